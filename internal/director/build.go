package director

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ivlev/tweek/internal/clock"
	"github.com/ivlev/tweek/internal/coordinator"
	"github.com/ivlev/tweek/internal/ease"
	"github.com/ivlev/tweek/internal/effects"
	"github.com/ivlev/tweek/internal/prop"
	"github.com/ivlev/tweek/internal/sprite"
	"github.com/ivlev/tweek/internal/timeline"
	"github.com/ivlev/tweek/internal/tween"
)

// ErrInvalidScenario wraps every validation failure reported by Build.
var ErrInvalidScenario = errors.New("invalid scenario")

// Seconds converts a scenario time in seconds to a Duration. Negative and
// non-finite values become zero; values too large to represent saturate
// at clock.Forever.
func Seconds(s float64) time.Duration {
	if math.IsInf(s, 0) {
		return 0
	}
	return clock.Scale(time.Second, s)
}

// Build compiles the scenario into a Coordinator driven by clk and the
// stage of sprites it animates. Timelines are added in file order, so the
// i-th timeline has handle i.
func (s *Scenario) Build(clk clock.Clock) (*coordinator.Coordinator, *sprite.Stage, error) {
	stage := sprite.NewStage()
	for i, ss := range s.Sprites {
		sp, err := ss.sprite()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: sprite %d: %v", ErrInvalidScenario, i, err)
		}
		stage.Add(sp)
	}

	c := coordinator.New()
	for i, ts := range s.Timelines {
		tl, err := ts.build(clk, stage)
		if err != nil {
			name := ts.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, nil, fmt.Errorf("%w: timeline %s: %v", ErrInvalidScenario, name, err)
		}
		c.Add(tl)
	}
	return c, stage, nil
}

func (ss SpriteSpec) sprite() (*sprite.Sprite, error) {
	if ss.ID == "" {
		return nil, errors.New("missing id")
	}
	sp := sprite.New(ss.ID)
	sp.X, sp.Y, sp.W, sp.H = ss.X, ss.Y, ss.W, ss.H
	sp.Rotation = ss.Rotation
	if ss.Alpha != nil {
		sp.Alpha = *ss.Alpha
	}
	if ss.Color != "" {
		c, err := prop.ParseColor(ss.Color)
		if err != nil {
			return nil, err
		}
		sp.Color = c
	}
	return sp, nil
}

func (ts TimelineSpec) build(clk clock.Clock, stage *sprite.Stage) (*timeline.Timeline, error) {
	align, err := timeline.ParseAlign(ts.Align)
	if err != nil {
		return nil, err
	}
	tweens := make([]*tween.Tween, 0, len(ts.Tweens))
	for _, tw := range ts.Tweens {
		if tw.ID == "" {
			return nil, errors.New("tween without id")
		}
		target, ok := stage.Get(tw.ID)
		if !ok {
			target = sprite.New(tw.ID)
			stage.Add(target)
		}
		b, err := tw.builder(target)
		if err != nil {
			return nil, fmt.Errorf("tween %s: %w", tw.ID, err)
		}
		tweens = append(tweens, b.Compile())
	}

	tl, err := timeline.New(clk, tweens...)
	if err != nil {
		return nil, err
	}
	switch {
	case ts.Stagger > 0:
		tl.Stagger(Seconds(ts.Stagger))
	default:
		tl.Align(align)
	}
	if ts.Repeat != 0 {
		tl.Repeat(ts.Repeat, Seconds(ts.RepeatDelay))
	}
	return tl, nil
}

func (tw TweenSpec) builder(target prop.Tweenable) (*tween.Builder, error) {
	b := tween.With(tw.ID, target)
	if e := tw.Effect; e != nil {
		effect, err := effects.New(e.Name)
		if err != nil {
			return nil, err
		}
		k, err := ease.Parse(e.Ease)
		if err != nil {
			return nil, err
		}
		effect.Apply(b, effects.Params{
			Duration: Seconds(e.Duration),
			Ease:     k,
			Distance: e.Distance,
			From:     e.From,
		})
	}
	for i, st := range tw.Steps {
		props, err := st.props()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		k, err := ease.Parse(st.Ease)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		b.To(props...).Duration(Seconds(st.Duration)).Ease(k).Delay(Seconds(st.Delay))
	}
	if tw.Repeat != 0 {
		b.Repeat(tw.Repeat, Seconds(tw.RepeatDelay))
	}
	if tw.Yoyo {
		b.Yoyo()
	}
	if tw.Speed != 0 {
		b.Speed(tw.Speed)
	}
	return b, nil
}

func (st StepSpec) props() ([]prop.Property, error) {
	out := make([]prop.Property, 0, len(st.Props))
	for _, ps := range st.Props {
		p, err := ps.Property()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Property converts ps to an engine property.
func (ps PropSpec) Property() (prop.Property, error) {
	k, err := prop.ParseKind(ps.Kind)
	if err != nil {
		return prop.Property{}, err
	}
	if k == prop.Color && ps.Color != "" {
		return prop.ParseColor(ps.Color)
	}
	if len(ps.Value) != k.Arity() {
		return prop.Property{}, fmt.Errorf("%s takes %d values, got %d", k, k.Arity(), len(ps.Value))
	}
	p := prop.Property{Kind: k}
	copy(p.V[:], ps.Value)
	return p, nil
}

// FromProperty is the inverse of PropSpec.Property.
func FromProperty(p prop.Property) PropSpec {
	if p.Kind == prop.Color {
		return PropSpec{Kind: p.Kind.String(), Color: prop.Hex(p)}
	}
	return PropSpec{Kind: p.Kind.String(), Value: append([]float64(nil), p.V[:p.Kind.Arity()]...)}
}
