package tween

import (
	"math"
	"time"

	"github.com/ivlev/tweek/internal/ease"
	"github.com/ivlev/tweek/internal/logging"
	"github.com/ivlev/tweek/internal/prop"
)

// Infinite as a repeat count loops forever.
const Infinite = -1

// DefaultDuration is used by steps that never set a duration.
const DefaultDuration = time.Second

// Spec is the immutable description of a tween, produced by a Builder.
type Spec struct {
	ID          string
	Steps       []PropSet
	Repeat      int
	RepeatDelay time.Duration
	Yoyo        bool
	Speed       float64
}

func (s Spec) clone() Spec {
	steps := make([]PropSet, len(s.Steps))
	for i, st := range s.Steps {
		steps[i] = st.clone()
	}
	s.Steps = steps
	return s
}

// Builder accumulates a Spec through chained calls:
//
//	tw := tween.With("box", sprite).
//		To(prop.Pos(400, 100)).Duration(time.Second).Ease(ease.SineOut).
//		To(prop.Opacity(0)).Duration(500 * time.Millisecond).
//		Repeat(2, 200*time.Millisecond).Yoyo().
//		Compile()
//
// Duration, Ease and Delay modify the most recent To step. Called before
// any To they set the defaults for the steps that follow.
type Builder struct {
	spec     Spec
	target   prop.Tweenable
	defaults PropSet
}

// With starts a Builder for the object identified by id.
func With(id string, target prop.Tweenable) *Builder {
	return &Builder{
		spec:     Spec{ID: id, Speed: 1},
		target:   target,
		defaults: PropSet{Duration: DefaultDuration, Ease: ease.Linear},
	}
}

// To appends a step animating towards props.
func (b *Builder) To(props ...prop.Property) *Builder {
	ps := b.defaults.clone()
	ps.Props = append([]prop.Property(nil), props...)
	b.spec.Steps = append(b.spec.Steps, ps)
	return b
}

func (b *Builder) last() *PropSet {
	if len(b.spec.Steps) == 0 {
		return &b.defaults
	}
	return &b.spec.Steps[len(b.spec.Steps)-1]
}

func (b *Builder) Duration(d time.Duration) *Builder {
	b.last().Duration = max(d, 0)
	return b
}

func (b *Builder) Ease(k ease.Kind) *Builder {
	b.last().Ease = k
	return b
}

func (b *Builder) Delay(d time.Duration) *Builder {
	b.last().Delay = max(d, 0)
	return b
}

// Repeat sets the number of extra cycles and the pause between cycles.
// Negative counts mean Infinite.
func (b *Builder) Repeat(n int, delay time.Duration) *Builder {
	if n < 0 {
		n = Infinite
	}
	b.spec.Repeat = n
	b.spec.RepeatDelay = max(delay, 0)
	return b
}

// Yoyo makes every repeat cycle run the chain in the opposite direction.
func (b *Builder) Yoyo() *Builder {
	b.spec.Yoyo = true
	return b
}

// Speed sets the playback rate. Non-positive or non-finite values reset it
// to 1.
func (b *Builder) Speed(s float64) *Builder {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		s = 1
	}
	b.spec.Speed = s
	return b
}

// Spec returns a copy of the accumulated description.
func (b *Builder) Spec() Spec { return b.spec.clone() }

// Compile returns a Pending tween for the accumulated description.
func (b *Builder) Compile() *Tween { return Compile(b.spec, b.target) }

// Compile builds a Pending tween from s animating target. Properties with
// non-finite components are dropped.
func Compile(s Spec, target prop.Tweenable) *Tween {
	s = s.clone()
	if s.Speed <= 0 || math.IsNaN(s.Speed) || math.IsInf(s.Speed, 0) {
		s.Speed = 1
	}
	if s.Repeat < 0 {
		s.Repeat = Infinite
	}

	chain := make([]*Animator, 0, len(s.Steps))
	for i := range s.Steps {
		st := &s.Steps[i]
		kept := st.Props[:0]
		for _, p := range st.Props {
			if !p.Finite() || !p.Kind.Valid() {
				logging.Logger().Warn("dropping property", "id", s.ID, "step", i, "prop", p.String())
				continue
			}
			kept = append(kept, p)
		}
		st.Props = kept
		st.Duration = max(st.Duration, 0)
		st.Delay = max(st.Delay, 0)
		chain = append(chain, NewAnimator(*st))
	}

	return &Tween{
		id:     s.ID,
		target: target,
		spec:   s,
		chain:  chain,
		left:   s.Repeat,
	}
}
