// Package timeline schedules many tweens against one clock, with stagger
// and sequence alignment, and defines the Context shared with the host.
package timeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/ivlev/tweek/internal/clock"
	"github.com/ivlev/tweek/internal/logging"
	"github.com/ivlev/tweek/internal/prop"
	"github.com/ivlev/tweek/internal/tween"
)

// Infinite as a timeline repeat count loops forever.
const Infinite = -1

// ErrDuplicateID is returned when two tweens of a timeline share an id.
var ErrDuplicateID = errors.New("timeline: duplicate tween id")

// Align selects how tween start offsets are laid out.
type Align int

const (
	// Normal starts every tween together.
	Normal Align = iota
	// Sequence starts each tween when the previous one ends.
	Sequence
	// Start is reserved and currently lays tweens out as Normal.
	Start
)

func (a Align) String() string {
	switch a {
	case Normal:
		return "normal"
	case Sequence:
		return "sequence"
	case Start:
		return "start"
	default:
		return fmt.Sprintf("align(%d)", int(a))
	}
}

// ParseAlign returns the Align named s.
func ParseAlign(s string) (Align, error) {
	switch s {
	case "", "normal":
		return Normal, nil
	case "sequence":
		return Sequence, nil
	case "start":
		return Start, nil
	default:
		return Normal, fmt.Errorf("unknown align: %q", s)
	}
}

// Range is a tween scheduled on the timeline clock. End is always
// Start plus the tween's total duration, saturating at clock.Forever.
type Range struct {
	Tween *tween.Tween
	Start time.Duration
	End   time.Duration
}

// Active reports whether elapsed falls within [Start, End).
func (r Range) Active(elapsed time.Duration) bool {
	return elapsed >= r.Start && elapsed < r.End
}

// Timeline plays a set of tweens keyed by id. It is not safe for
// concurrent use.
type Timeline struct {
	clock  clock.Clock
	ranges map[string]*Range
	order  []string

	anchor   time.Time
	last     time.Duration
	playing  bool
	paused   bool
	pausedAt time.Time

	repeat      int
	repeatDelay time.Duration
	left        int
	cycle       int
}

// New returns a timeline holding tweens in the given order, all starting
// at offset zero. A nil clock reads the system clock.
func New(clk clock.Clock, tweens ...*tween.Tween) (*Timeline, error) {
	if clk == nil {
		clk = clock.System{}
	}
	tl := &Timeline{
		clock:  clk,
		ranges: make(map[string]*Range, len(tweens)),
	}
	if err := tl.Add(tweens...); err != nil {
		return nil, err
	}
	return tl, nil
}

// Add appends tweens at offset zero. Nothing is added if any id is already
// present or repeated within tweens.
func (tl *Timeline) Add(tweens ...*tween.Tween) error {
	seen := make(map[string]bool, len(tweens))
	for _, tw := range tweens {
		id := tw.ID()
		if _, ok := tl.ranges[id]; ok || seen[id] {
			logging.Logger().Warn("duplicate tween id", "id", id)
			return fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		seen[id] = true
	}
	for _, tw := range tweens {
		tl.ranges[tw.ID()] = &Range{Tween: tw, End: tw.TotalDuration()}
		tl.order = append(tl.order, tw.ID())
	}
	return nil
}

// Stagger starts the i-th tween, in insertion order, at i*offset. It
// replaces any earlier alignment.
func (tl *Timeline) Stagger(offset time.Duration) *Timeline {
	offset = max(offset, 0)
	for i, id := range tl.order {
		r := tl.ranges[id]
		r.Start = clock.Mul(offset, int64(i))
		r.End = clock.Add(r.Start, r.Tween.TotalDuration())
	}
	return tl
}

// Align lays out start offsets. It replaces any earlier stagger.
func (tl *Timeline) Align(a Align) *Timeline {
	if a == Start {
		logging.Logger().Debug("align start is laid out as normal")
	}
	var cum time.Duration
	for _, id := range tl.order {
		r := tl.ranges[id]
		r.Start = 0
		if a == Sequence {
			r.Start = cum
		}
		r.End = clock.Add(r.Start, r.Tween.TotalDuration())
		cum = r.End
	}
	return tl
}

// Repeat replays the whole timeline n more times, waiting delay after
// TotalTime before each replay. Negative n repeats forever.
func (tl *Timeline) Repeat(n int, delay time.Duration) *Timeline {
	if n < 0 {
		n = Infinite
	}
	tl.repeat = n
	tl.repeatDelay = max(delay, 0)
	tl.left = n
	return tl
}

// Play anchors the timeline clock now, resets every tween and starts
// those scheduled at offset zero. Later tweens start from Update.
func (tl *Timeline) Play() {
	tl.anchor = tl.clock.Now()
	tl.last = 0
	tl.playing = true
	tl.paused = false
	tl.left = tl.repeat
	tl.cycle = 0
	for _, id := range tl.order {
		r := tl.ranges[id]
		r.Tween.Reset()
		if r.Start == 0 {
			r.Tween.Play()
		}
	}
	logging.Logger().Debug("timeline play", "tweens", len(tl.order), "total", tl.TotalTime())
}

// Reset re-anchors the clock now and returns every tween to Pending. The
// timeline keeps playing; tweens start again from Update.
func (tl *Timeline) Reset() {
	tl.anchor = tl.clock.Now()
	tl.last = 0
	tl.playing = true
	tl.paused = false
	tl.left = tl.repeat
	tl.cycle = 0
	for _, id := range tl.order {
		tl.ranges[id].Tween.Reset()
	}
}

// Pause freezes the timeline clock.
func (tl *Timeline) Pause() {
	if !tl.playing || tl.paused {
		return
	}
	tl.paused = true
	tl.pausedAt = tl.clock.Now()
	for _, id := range tl.order {
		tl.ranges[id].Tween.Pause()
	}
}

// Resume continues a paused timeline; the paused span is not counted.
func (tl *Timeline) Resume() {
	if !tl.paused {
		return
	}
	tl.anchor = tl.anchor.Add(tl.clock.Now().Sub(tl.pausedAt))
	tl.paused = false
	for _, id := range tl.order {
		tl.ranges[id].Tween.Resume()
	}
}

// Stop halts the timeline and every tween.
func (tl *Timeline) Stop() {
	tl.playing = false
	tl.paused = false
	for _, id := range tl.order {
		tl.ranges[id].Tween.Stop()
	}
}

// Playing reports whether the timeline has been started and not stopped.
func (tl *Timeline) Playing() bool { return tl.playing }

// Paused reports whether the timeline clock is frozen.
func (tl *Timeline) Paused() bool { return tl.paused }

// Cycle returns the number of completed timeline repeats.
func (tl *Timeline) Cycle() int { return tl.cycle }

// Elapsed returns the time since the anchor, excluding paused spans.
func (tl *Timeline) Elapsed() time.Duration {
	if !tl.playing {
		return tl.last
	}
	now := tl.clock.Now()
	if tl.paused {
		now = tl.pausedAt
	}
	return max(now.Sub(tl.anchor), 0)
}

// Update advances every started tween to the timeline clock. Tweens whose
// offset has been reached are started lazily and caught up to the current
// time; tweens past their window keep being ticked so unfinished or
// looping tweens are not starved. Lifecycle events are appended to
// ctx.Events.
func (tl *Timeline) Update(ctx *Context) {
	if ctx == nil {
		ctx = NewContext()
	}
	defer func() {
		ctx.ElapsedTime = tl.Elapsed()
		ctx.TotalTime = tl.TotalTime()
	}()
	if !tl.playing || tl.paused {
		return
	}

	elapsed := tl.wrap(ctx, tl.Elapsed())

	dt := max(elapsed-tl.last, 0)
	tl.last = elapsed
	for _, id := range tl.order {
		r := tl.ranges[id]
		if elapsed < r.Start {
			continue
		}
		if r.Tween.State() == tween.Pending {
			r.Tween.Play()
			r.Tween.Tick(elapsed - r.Start)
		} else {
			r.Tween.Tick(dt)
		}
		ctx.Events = append(ctx.Events, r.Tween.DrainEvents()...)
	}
}

// wrap applies timeline repeats, moving the anchor forward by whole
// periods, and returns the elapsed time within the current period.
func (tl *Timeline) wrap(ctx *Context, elapsed time.Duration) time.Duration {
	for tl.left != 0 {
		period := clock.Add(tl.TotalTime(), tl.repeatDelay)
		if period <= 0 || elapsed < period {
			break
		}
		for _, id := range tl.order {
			r := tl.ranges[id]
			// Deliver the end of the finished period before restarting.
			if r.Tween.State() != tween.Pending {
				r.Tween.Tick(max(r.End-tl.last, 0))
			}
			ctx.Events = append(ctx.Events, r.Tween.DrainEvents()...)
			r.Tween.Reset()
		}
		tl.anchor = tl.anchor.Add(period)
		elapsed -= period
		tl.last = 0
		tl.cycle++
		if tl.left > 0 {
			tl.left--
		}
		logging.Logger().Debug("timeline repeat", "cycle", tl.cycle)
	}
	return elapsed
}

// GetUpdate returns the current values of the tween identified by id.
func (tl *Timeline) GetUpdate(id string) ([]prop.Property, bool) {
	r, ok := tl.ranges[id]
	if !ok {
		return nil, false
	}
	return r.Tween.GetUpdate(id)
}

// TotalTime returns the latest End of all ranges, or zero when empty.
func (tl *Timeline) TotalTime() time.Duration {
	var total time.Duration
	for _, r := range tl.ranges {
		total = max(total, r.End)
	}
	return total
}

// Range returns the schedule of the tween identified by id.
func (tl *Timeline) Range(id string) (Range, bool) {
	r, ok := tl.ranges[id]
	if !ok {
		return Range{}, false
	}
	return *r, true
}

// Ranges returns the schedule of every tween in insertion order.
func (tl *Timeline) Ranges() []Range {
	out := make([]Range, len(tl.order))
	for i, id := range tl.order {
		out[i] = *tl.ranges[id]
	}
	return out
}

// IDs returns tween ids in insertion order.
func (tl *Timeline) IDs() []string {
	return append([]string(nil), tl.order...)
}

// Len returns the number of tweens.
func (tl *Timeline) Len() int { return len(tl.order) }
