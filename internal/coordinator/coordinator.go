// Package coordinator owns a set of timelines, routes host requests and
// fans tween events out to subscribers.
package coordinator

import (
	"fmt"
	"time"

	"github.com/ivlev/tweek/internal/logging"
	"github.com/ivlev/tweek/internal/prop"
	"github.com/ivlev/tweek/internal/timeline"
	"github.com/ivlev/tweek/internal/tween"
)

// Handle addresses a timeline owned by a Coordinator.
type Handle int

func (h Handle) String() string { return fmt.Sprintf("timeline#%d", int(h)) }

// Coordinator drives many timelines from a single Update call. It is not
// safe for concurrent use.
type Coordinator struct {
	timelines   []*timeline.Timeline
	subscribers []func(tween.Event)
}

// New returns a Coordinator holding the given timelines in order.
func New(tls ...*timeline.Timeline) *Coordinator {
	c := &Coordinator{}
	for _, tl := range tls {
		c.Add(tl)
	}
	return c
}

// Add takes ownership of tl and returns its handle.
func (c *Coordinator) Add(tl *timeline.Timeline) Handle {
	c.timelines = append(c.timelines, tl)
	return Handle(len(c.timelines) - 1)
}

// Timeline returns the timeline behind h.
func (c *Coordinator) Timeline(h Handle) (*timeline.Timeline, bool) {
	if h < 0 || int(h) >= len(c.timelines) {
		return nil, false
	}
	return c.timelines[h], true
}

// Handles returns every handle in insertion order.
func (c *Coordinator) Handles() []Handle {
	hs := make([]Handle, len(c.timelines))
	for i := range hs {
		hs[i] = Handle(i)
	}
	return hs
}

// Len returns the number of timelines.
func (c *Coordinator) Len() int { return len(c.timelines) }

// Subscribe registers fn to receive every event produced by Update.
func (c *Coordinator) Subscribe(fn func(tween.Event)) {
	if fn != nil {
		c.subscribers = append(c.subscribers, fn)
	}
}

// Update either serves the pending requests in ctx or advances every
// timeline, never both in the same call. When requests are present they
// are processed and cleared and no time is applied; otherwise ctx.Events
// is replaced with this frame's events and subscribers are notified.
func (c *Coordinator) Update(ctx *timeline.Context) {
	if ctx == nil {
		ctx = timeline.NewContext()
	}
	if len(ctx.Requests) > 0 {
		for _, r := range ctx.Requests {
			c.handle(r)
		}
		ctx.Requests = ctx.Requests[:0]
		return
	}

	ctx.Events = ctx.Events[:0]
	var elapsed, total time.Duration
	for _, tl := range c.timelines {
		tl.Update(ctx)
		elapsed = max(elapsed, ctx.ElapsedTime)
		total = max(total, ctx.TotalTime)
	}
	ctx.ElapsedTime, ctx.TotalTime = elapsed, total

	for _, e := range ctx.Events {
		for _, fn := range c.subscribers {
			fn(e)
		}
	}
}

func (c *Coordinator) handle(r timeline.Request) {
	switch r.Kind {
	case timeline.RequestPlay:
		logging.Logger().Debug("request play", "timelines", len(c.timelines))
		c.Reset()
	default:
		logging.Logger().Debug("ignoring request", "kind", r.Kind.String(), "code", r.Code)
	}
}

// Play starts every timeline from the beginning.
func (c *Coordinator) Play() {
	for _, tl := range c.timelines {
		tl.Play()
	}
}

// Stop halts every timeline.
func (c *Coordinator) Stop() {
	for _, tl := range c.timelines {
		tl.Stop()
	}
}

// Pause freezes every timeline.
func (c *Coordinator) Pause() {
	for _, tl := range c.timelines {
		tl.Pause()
	}
}

// Resume continues every paused timeline.
func (c *Coordinator) Resume() {
	for _, tl := range c.timelines {
		tl.Resume()
	}
}

// Reset re-anchors every timeline and returns its tweens to Pending.
func (c *Coordinator) Reset() {
	for _, tl := range c.timelines {
		tl.Reset()
	}
}

// GetUpdate returns the values of the first tween named id that reports
// any, scanning timelines in handle order. A timeline whose tween is
// Pending or already completed does not answer, so a later timeline that
// animates the same id takes over. A sprite can therefore be handed from
// one timeline to the next.
func (c *Coordinator) GetUpdate(id string) ([]prop.Property, bool) {
	for _, tl := range c.timelines {
		if props, ok := tl.GetUpdate(id); ok {
			return props, true
		}
	}
	return nil, false
}

// TotalTime returns the longest timeline length.
func (c *Coordinator) TotalTime() (total time.Duration) {
	for _, tl := range c.timelines {
		total = max(total, tl.TotalTime())
	}
	return total
}

// Trigger is a command that plays one timeline, for wiring to host input.
type Trigger struct {
	Handle Handle
}

// Fire plays the timeline behind t.Handle. It reports false for an unknown
// handle.
func (t Trigger) Fire(c *Coordinator) bool {
	tl, ok := c.Timeline(t.Handle)
	if !ok {
		logging.Logger().Warn("trigger on unknown timeline", "handle", t.Handle.String())
		return false
	}
	tl.Play()
	return true
}
