// Package tween implements single-target property transitions: compiled
// chains of steps driven by a repeat/yoyo state machine.
package tween

import (
	"fmt"
	"time"

	"github.com/ivlev/tweek/internal/clock"
	"github.com/ivlev/tweek/internal/logging"
	"github.com/ivlev/tweek/internal/prop"
)

// State is the play state of a Tween.
type State int

const (
	Pending   State = iota // built, not started
	Running                // advancing through the chain
	Idle                   // waiting out the delay between repeat cycles
	Paused                 // frozen; resumes to Running or Idle
	Completed              // finished or stopped
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Idle:
		return "idle"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// EventKind classifies lifecycle events.
type EventKind int

const (
	Started EventKind = iota
	Repeated
	Finished
)

func (k EventKind) String() string {
	switch k {
	case Started:
		return "started"
	case Repeated:
		return "repeated"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a coarse lifecycle notification for one tween.
type Event struct {
	Kind  EventKind
	ID    string
	Cycle int
}

func (e Event) String() string { return fmt.Sprintf("%s(%s#%d)", e.Kind, e.ID, e.Cycle) }

// Tween animates the properties of one target through a chain of steps.
// A Tween is not safe for concurrent use.
type Tween struct {
	id     string
	target prop.Tweenable
	spec   Spec
	chain  []*Animator

	state  State
	resume State

	index    int
	local    time.Duration // within the current step
	elapsed  time.Duration // scaled time since Play
	cycle    int
	left     int // repeats remaining, or Infinite
	wait     time.Duration
	reversed bool

	// final keeps the end frame readable until the Tick after completion.
	final  bool
	events []Event
}

func (t *Tween) ID() string               { return t.id }
func (t *Tween) Target() prop.Tweenable   { return t.target }
func (t *Tween) Spec() Spec               { return t.spec.clone() }
func (t *Tween) State() State             { return t.state }
func (t *Tween) Cycle() int               { return t.cycle }
func (t *Tween) Reversed() bool           { return t.reversed }
func (t *Tween) Elapsed() time.Duration   { return t.elapsed }
func (t *Tween) Steps() int               { return len(t.chain) }
func (t *Tween) Step() int                { return t.index }
func (t *Tween) Animator(i int) *Animator { return t.chain[i] }

// ChainDuration returns the length of one pass through the chain at speed 1.
func (t *Tween) ChainDuration() time.Duration {
	var d time.Duration
	for _, a := range t.chain {
		d = clock.Add(d, a.Duration())
	}
	return d
}

// lap is the time from the end of one pass to the end of the next.
func (t *Tween) lap() time.Duration {
	return clock.Add(t.ChainDuration(), t.spec.RepeatDelay)
}

// TotalDuration returns the scheduled play length including every repeat
// cycle and repeat delay, scaled by speed. An infinitely repeating tween
// reports a single cycle. Lengths too large to represent saturate at
// clock.Forever.
func (t *Tween) TotalDuration() time.Duration {
	d := t.ChainDuration()
	if n := int64(t.spec.Repeat); n > 0 {
		d = clock.Add(d, clock.Mul(t.lap(), n))
	}
	scaled := float64(d) / t.spec.Speed
	if scaled >= float64(clock.Forever) {
		return clock.Forever
	}
	return time.Duration(scaled)
}

// Play starts the tween. Pending or Completed tweens restart from the
// first step, capturing start values from the target. An Idle tween skips
// the rest of its repeat delay and a Paused one resumes.
func (t *Tween) Play() {
	switch t.state {
	case Running:
		return
	case Paused:
		t.Resume()
		return
	case Idle:
		t.wait = 0
		t.nextCycle()
		return
	}

	t.restart()
	t.emit(Started)
	logging.Logger().Debug("tween started", "id", t.id, "steps", len(t.chain))
	if len(t.chain) == 0 {
		t.complete()
		return
	}
	t.state = Running
	t.activate()
}

// Pause freezes a Running or Idle tween.
func (t *Tween) Pause() {
	if t.state != Running && t.state != Idle {
		return
	}
	t.resume = t.state
	t.state = Paused
}

// Resume continues a Paused tween.
func (t *Tween) Resume() {
	if t.state == Paused {
		t.state = t.resume
	}
}

// Stop ends the tween without emitting a completion event.
func (t *Tween) Stop() {
	t.state = Completed
	t.final = false
}

// Reset returns the tween to Pending, restoring repeat counters and
// discarding captured start values.
func (t *Tween) Reset() {
	t.restart()
	t.state = Pending
	t.events = nil
}

func (t *Tween) restart() {
	t.index, t.local, t.elapsed, t.cycle = 0, 0, 0, 0
	t.left = t.spec.Repeat
	t.wait = 0
	t.reversed = false
	t.final = false
	for _, a := range t.chain {
		a.reset()
	}
}

// Tick advances the tween by dt scaled by its speed. Time left over at a
// step, cycle or delay boundary carries into what follows. Whole repeat
// cycles covered by dt are skipped at once and reported by a single
// Repeated event.
func (t *Tween) Tick(dt time.Duration) {
	t.final = false
	if t.state != Running && t.state != Idle {
		return
	}
	adv := clock.Scale(dt, t.spec.Speed)
	t.elapsed = clock.Add(t.elapsed, adv)

	for {
		if t.state == Idle {
			if adv < t.wait {
				t.wait -= adv
				return
			}
			adv -= t.wait
			t.wait = 0
			t.nextCycle()
			continue
		}

		remaining := t.current().Duration() - t.local
		if adv < remaining {
			t.local += adv
			return
		}
		adv -= remaining
		t.local += remaining

		if t.index+1 < len(t.chain) {
			t.index++
			t.local = 0
			t.activate()
			continue
		}
		var ok bool
		if adv, ok = t.endCycle(adv); !ok {
			return
		}
	}
}

// endCycle handles an exhausted chain with adv still to apply. It returns
// the time left after any skipped cycles and whether playback goes on.
func (t *Tween) endCycle(adv time.Duration) (time.Duration, bool) {
	lap := t.lap()
	if t.left == 0 || (t.left == Infinite && lap == 0) {
		t.complete()
		return 0, false
	}
	if k := t.skippable(adv, lap); k > 0 {
		adv -= time.Duration(k) * lap
		t.skip(int(k))
		if t.left == 0 {
			t.complete()
			return 0, false
		}
	}
	if t.left > 0 {
		t.left--
	}
	t.emit(Repeated)
	if t.spec.RepeatDelay > 0 {
		t.state = Idle
		t.wait = t.spec.RepeatDelay
		return adv, true
	}
	t.nextCycle()
	return adv, true
}

// skippable returns how many whole cycles adv covers, bounded by the
// repeats left. Zero-length cycles are all skippable.
func (t *Tween) skippable(adv, lap time.Duration) int64 {
	if lap == 0 {
		return int64(t.left)
	}
	k := int64(adv / lap)
	if t.left != Infinite {
		k = min(k, int64(t.left))
	}
	return k
}

// skip jumps over k whole cycles, leaving the tween at the end of the last
// one. Yoyo direction follows the parity of k.
func (t *Tween) skip(k int) {
	t.cycle += k
	t.events = append(t.events, Event{Kind: Repeated, ID: t.id, Cycle: t.cycle - 1})
	if t.left > 0 {
		t.left -= k
	}
	if t.spec.Yoyo && k%2 == 1 {
		t.reversed = !t.reversed
	}
	t.index = len(t.chain) - 1
	t.local = t.current().Duration()
	logging.Logger().Debug("tween skipped cycles", "id", t.id, "cycles", k)
}

func (t *Tween) nextCycle() {
	t.cycle++
	t.index = 0
	t.local = 0
	if t.spec.Yoyo {
		t.reversed = !t.reversed
	}
	t.state = Running
	t.activate()
}

func (t *Tween) complete() {
	t.state = Completed
	t.final = true
	t.emit(Finished)
	logging.Logger().Debug("tween completed", "id", t.id, "cycles", t.cycle+1)
}

func (t *Tween) emit(k EventKind) {
	t.events = append(t.events, Event{Kind: k, ID: t.id, Cycle: t.cycle})
}

// current returns the active step, honouring yoyo direction.
func (t *Tween) current() *Animator {
	if t.reversed {
		return t.chain[len(t.chain)-1-t.index]
	}
	return t.chain[t.index]
}

// activate captures start values for the active step on its first use.
func (t *Tween) activate() {
	a := t.current()
	if a.Captured() {
		return
	}
	a.Capture(t.startValue)
}

// startValue resolves where a step begins for kind k: the nearest earlier
// step animating k, otherwise the target's current value.
func (t *Tween) startValue(k prop.Kind) prop.Property {
	for i := t.index - 1; i >= 0; i-- {
		if p, ok := t.chain[i].End(k); ok {
			return p
		}
	}
	if t.target != nil {
		if p := t.target.Get(k); p.Finite() {
			p.Kind = k
			return p
		}
	}
	return prop.Zero(k)
}

// GetUpdate returns the values for the current step if id names this tween
// and it is playing. The end values stay readable until the Tick after
// completion. GetUpdate never advances time.
func (t *Tween) GetUpdate(id string) ([]prop.Property, bool) {
	if id != t.id || len(t.chain) == 0 {
		return nil, false
	}
	switch t.state {
	case Running, Idle, Paused:
	case Completed:
		if !t.final {
			return nil, false
		}
	default:
		return nil, false
	}
	return t.current().compute(t.local, t.reversed), true
}

// DrainEvents returns and clears the pending lifecycle events.
func (t *Tween) DrainEvents() []Event {
	ev := t.events
	t.events = nil
	return ev
}
