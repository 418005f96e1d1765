// Package effects provides named tween presets that append steps to a
// tween.Builder.
package effects

import (
	"time"

	"github.com/ivlev/tweek/internal/ease"
	"github.com/ivlev/tweek/internal/prop"
	"github.com/ivlev/tweek/internal/tween"
)

// Params tunes a preset. Zero fields take the preset's defaults.
type Params struct {
	Duration time.Duration
	Ease     ease.Kind
	// Distance is the slide offset in pixels, the pulse growth in pixels
	// or the spin angle in degrees.
	Distance float64
	// From is the edge a slide_in enters from: left, right, top or bottom.
	From string
}

// Effect appends its steps to a builder.
type Effect interface {
	Apply(b *tween.Builder, p Params) *tween.Builder
}

// Func adapts a plain function to Effect.
type Func func(b *tween.Builder, p Params) *tween.Builder

func (f Func) Apply(b *tween.Builder, p Params) *tween.Builder { return f(b, p) }

func (p Params) duration() time.Duration {
	if p.Duration <= 0 {
		return 500 * time.Millisecond
	}
	return p.Duration
}

func (p Params) distance(def float64) float64 {
	if p.Distance == 0 {
		return def
	}
	return p.Distance
}

// FadeIn jumps to transparent and fades to opaque.
func FadeIn(b *tween.Builder, p Params) *tween.Builder {
	return b.To(prop.Opacity(0)).Duration(0).
		To(prop.Opacity(1)).Duration(p.duration()).Ease(p.Ease)
}

// FadeOut fades from the current alpha to transparent.
func FadeOut(b *tween.Builder, p Params) *tween.Builder {
	return b.To(prop.Opacity(0)).Duration(p.duration()).Ease(p.Ease)
}

// SlideIn jumps Distance pixels away towards p.From and slides back to
// where the target was.
func SlideIn(b *tween.Builder, p Params) *tween.Builder {
	d := p.distance(100)
	var dx, dy float64
	switch p.From {
	case "right":
		dx = d
	case "top":
		dy = -d
	case "bottom":
		dy = d
	default:
		dx = -d
	}
	return b.To(prop.Move(dx, dy)).Duration(0).
		To(prop.Move(-dx, -dy)).Duration(p.duration()).Ease(p.Ease)
}

// Pulse grows the target by Distance pixels and shrinks it back.
func Pulse(b *tween.Builder, p Params) *tween.Builder {
	d := p.distance(10)
	half := p.duration() / 2
	return b.To(prop.Resize(d, d)).Duration(half).Ease(p.Ease).
		To(prop.Resize(-d, -d)).Duration(half).Ease(p.Ease)
}

// Spin rotates to Distance degrees, a full turn by default.
func Spin(b *tween.Builder, p Params) *tween.Builder {
	return b.To(prop.Rotate(p.distance(360))).Duration(p.duration()).Ease(p.Ease)
}

// Blink fades out and back in.
func Blink(b *tween.Builder, p Params) *tween.Builder {
	half := p.duration() / 2
	return b.To(prop.Opacity(0)).Duration(half).Ease(p.Ease).
		To(prop.Opacity(1)).Duration(half).Ease(p.Ease)
}
