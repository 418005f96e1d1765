package tween

import (
	"time"

	"github.com/ivlev/tweek/internal/clock"
	"github.com/ivlev/tweek/internal/ease"
	"github.com/ivlev/tweek/internal/prop"
)

// PropSet is one step of a tween chain: target properties sharing a
// duration, easing and optional delay.
type PropSet struct {
	Props    []prop.Property
	Duration time.Duration
	Ease     ease.Kind
	Delay    time.Duration
}

// Total returns the step length including its delay.
func (ps PropSet) Total() time.Duration { return clock.Add(ps.Delay, ps.Duration) }

func (ps PropSet) clone() PropSet {
	ps.Props = append([]prop.Property(nil), ps.Props...)
	return ps
}

// target is the resolved goal for one base kind of a PropSet.
type target struct {
	kind   prop.Kind
	abs    prop.Property
	hasAbs bool
	delta  prop.Property
}

// Animator is a compiled chain step. Start values are captured when the
// step first becomes active.
type Animator struct {
	set      PropSet
	targets  []target
	start    []prop.Property
	end      []prop.Property
	captured bool
}

// NewAnimator compiles ps. Several entries for the same base kind merge:
// the last absolute value wins and relative deltas accumulate on top.
func NewAnimator(ps PropSet) *Animator {
	a := &Animator{set: ps.clone()}
	index := make(map[prop.Kind]int)
	for _, p := range ps.Props {
		base := p.Kind.Base()
		i, ok := index[base]
		if !ok {
			i = len(a.targets)
			index[base] = i
			a.targets = append(a.targets, target{kind: base, delta: prop.Property{Kind: base}})
		}
		t := &a.targets[i]
		if p.Kind.Relative() {
			t.delta = t.delta.Add(p)
			continue
		}
		t.abs = p
		t.hasAbs = true
	}
	return a
}

// Duration returns the step length including delay.
func (a *Animator) Duration() time.Duration { return a.set.Total() }

// Set returns the step's PropSet.
func (a *Animator) Set() PropSet { return a.set }

// Captured reports whether start values have been snapshotted.
func (a *Animator) Captured() bool { return a.captured }

// Capture snapshots start values using lookup and resolves end values.
func (a *Animator) Capture(lookup func(prop.Kind) prop.Property) {
	a.start = make([]prop.Property, len(a.targets))
	a.end = make([]prop.Property, len(a.targets))
	for i, t := range a.targets {
		s := prop.Zero(t.kind)
		if lookup != nil {
			s = lookup(t.kind)
			s.Kind = t.kind
		}
		e := s
		if t.hasAbs {
			e = t.abs
		}
		a.start[i] = s
		a.end[i] = e.Add(t.delta)
	}
	a.captured = true
}

func (a *Animator) reset() {
	a.start, a.end, a.captured = nil, nil, false
}

// End returns the resolved end value for base kind k.
func (a *Animator) End(k prop.Kind) (prop.Property, bool) {
	for i, t := range a.targets {
		if t.kind == k && a.captured {
			return a.end[i], true
		}
	}
	return prop.Property{}, false
}

// Compute returns the interpolated values at local time within the step.
// Times at or before the delay yield the start values; times at or after
// the end yield the end values exactly.
func (a *Animator) Compute(local time.Duration) []prop.Property {
	return a.compute(local, false)
}

func (a *Animator) compute(local time.Duration, reversed bool) []prop.Property {
	if !a.captured {
		a.Capture(nil)
	}
	from, to := a.start, a.end
	if reversed {
		from, to = to, from
	}

	out := make([]prop.Property, len(from))
	switch {
	case a.set.Duration <= 0 && local >= a.set.Delay:
		copy(out, to)
		return out
	case local <= a.set.Delay:
		copy(out, from)
		return out
	case local >= a.set.Total():
		copy(out, to)
		return out
	}

	p := a.set.Ease.Ease(float64(local-a.set.Delay) / float64(a.set.Duration))
	for i := range from {
		out[i] = from[i].Lerp(to[i], p)
	}
	return out
}
