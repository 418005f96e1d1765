package tween

import (
	"testing"
	"time"

	"github.com/ivlev/tweek/internal/ease"
	"github.com/ivlev/tweek/internal/prop"
)

func TestAnimatorBoundaries(t *testing.T) {
	start := map[prop.Kind]prop.Property{
		prop.Position: prop.Pos(-5, 7),
		prop.Color:    prop.RGBA(1, 0, 0, 1),
		prop.Rotation: prop.Rotate(15),
	}
	lookup := func(k prop.Kind) prop.Property { return start[k] }

	for _, k := range ease.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			a := NewAnimator(PropSet{
				Props:    []prop.Property{prop.Pos(400, 100), prop.RGBA(0, 0, 1, 0.5), prop.Rotate(-90)},
				Duration: 750 * time.Millisecond,
				Ease:     k,
			})
			a.Capture(lookup)

			wantProps(t, a.Compute(0), prop.Pos(-5, 7), prop.RGBA(1, 0, 0, 1), prop.Rotate(15))
			wantProps(t, a.Compute(750*time.Millisecond), prop.Pos(400, 100), prop.RGBA(0, 0, 1, 0.5), prop.Rotate(-90))
			wantProps(t, a.Compute(time.Hour), prop.Pos(400, 100), prop.RGBA(0, 0, 1, 0.5), prop.Rotate(-90))
			wantProps(t, a.Compute(-time.Second), prop.Pos(-5, 7), prop.RGBA(1, 0, 0, 1), prop.Rotate(15))
		})
	}
}

func TestAnimatorDelay(t *testing.T) {
	a := NewAnimator(PropSet{
		Props:    []prop.Property{prop.Scalar(10)},
		Duration: time.Second,
		Delay:    500 * time.Millisecond,
	})
	a.Capture(func(prop.Kind) prop.Property { return prop.Scalar(0) })

	if a.Duration() != 1500*time.Millisecond {
		t.Fatalf("Duration = %v, want 1.5s", a.Duration())
	}
	wantProps(t, a.Compute(400*time.Millisecond), prop.Scalar(0))
	wantProps(t, a.Compute(time.Second), prop.Scalar(5))
	wantProps(t, a.Compute(1500*time.Millisecond), prop.Scalar(10))
}

func TestAnimatorEased(t *testing.T) {
	a := NewAnimator(PropSet{
		Props:    []prop.Property{prop.Scalar(100)},
		Duration: time.Second,
		Ease:     ease.QuadIn,
	})
	a.Capture(func(prop.Kind) prop.Property { return prop.Scalar(0) })
	wantProps(t, a.Compute(500*time.Millisecond), prop.Scalar(25))
}

func TestAnimatorWithoutCapture(t *testing.T) {
	a := NewAnimator(PropSet{Props: []prop.Property{prop.Opacity(0)}, Duration: time.Second})
	// Uncaptured steps start from the kind's zero value (opaque alpha).
	wantProps(t, a.Compute(500*time.Millisecond), prop.Opacity(0.5))
}

func TestAnimatorReversed(t *testing.T) {
	a := NewAnimator(PropSet{Props: []prop.Property{prop.Scalar(10)}, Duration: time.Second})
	a.Capture(func(prop.Kind) prop.Property { return prop.Scalar(0) })
	wantProps(t, a.compute(0, true), prop.Scalar(10))
	wantProps(t, a.compute(250*time.Millisecond, true), prop.Scalar(7.5))
	wantProps(t, a.compute(time.Second, true), prop.Scalar(0))
}
