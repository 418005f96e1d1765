// Package prop defines the animatable property model and the Tweenable
// contract implemented by host objects.
package prop

import (
	"fmt"
	"math"
	"strings"
)

// Kind tags a Property and fixes its arity.
type Kind int

const (
	Position Kind = iota // x, y
	Size                 // w, h
	Alpha                // a
	Rotation             // degrees
	Color                // r, g, b, a in [0,1]
	Shift                // dx, dy added to Position
	Grow                 // dw, dh added to Size
	Float                // generic scalar

	numKinds
)

var kindNames = [numKinds]string{
	Position: "position",
	Size:     "size",
	Alpha:    "alpha",
	Rotation: "rotation",
	Color:    "color",
	Shift:    "shift",
	Grow:     "grow",
	Float:    "float",
}

var arity = [numKinds]int{
	Position: 2,
	Size:     2,
	Alpha:    1,
	Rotation: 1,
	Color:    4,
	Shift:    2,
	Grow:     2,
	Float:    1,
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k >= 0 && k < numKinds }

// Arity returns the number of meaningful components for k.
func (k Kind) Arity() int {
	if !k.Valid() {
		return 0
	}
	return arity[k]
}

// Relative reports whether k is a delta applied to its Base kind.
func (k Kind) Relative() bool { return k == Shift || k == Grow }

// Base returns the absolute kind a relative kind modifies; absolute kinds
// return themselves.
func (k Kind) Base() Kind {
	switch k {
	case Shift:
		return Position
	case Grow:
		return Size
	default:
		return k
	}
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	switch n {
	case "pos":
		return Position, nil
	case "rot":
		return Rotation, nil
	}
	for k, name := range kindNames {
		if name == n {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown property kind: %q", s)
}

// Property is a tagged fixed-arity value. Components beyond the kind's
// arity are zero.
type Property struct {
	Kind Kind
	V    [4]float64
}

// Pos returns a Position property.
func Pos(x, y float64) Property { return Property{Kind: Position, V: [4]float64{x, y}} }

// Dim returns a Size property.
func Dim(w, h float64) Property { return Property{Kind: Size, V: [4]float64{w, h}} }

// Opacity returns an Alpha property.
func Opacity(a float64) Property { return Property{Kind: Alpha, V: [4]float64{a}} }

// Rotate returns a Rotation property in degrees.
func Rotate(deg float64) Property { return Property{Kind: Rotation, V: [4]float64{deg}} }

// Move returns a Shift property.
func Move(dx, dy float64) Property { return Property{Kind: Shift, V: [4]float64{dx, dy}} }

// Resize returns a Grow property.
func Resize(dw, dh float64) Property { return Property{Kind: Grow, V: [4]float64{dw, dh}} }

// Scalar returns a Float property.
func Scalar(v float64) Property { return Property{Kind: Float, V: [4]float64{v}} }

// Zero returns the zero value for k. Alpha and Color default to opaque.
func Zero(k Kind) Property {
	p := Property{Kind: k}
	switch k {
	case Alpha:
		p.V[0] = 1
	case Color:
		p.V[3] = 1
	}
	return p
}

// X returns the first component.
func (p Property) X() float64 { return p.V[0] }

// Y returns the second component.
func (p Property) Y() float64 { return p.V[1] }

// Add returns the componentwise sum of p and o, keeping p's kind.
func (p Property) Add(o Property) Property {
	for i := range p.Kind.Arity() {
		p.V[i] += o.V[i]
	}
	return p
}

// Lerp interpolates componentwise from p towards to by progress t. The
// result has p's kind. t outside [0,1] extrapolates, which eased overshoot
// relies on.
func (p Property) Lerp(to Property, t float64) Property {
	out := Property{Kind: p.Kind}
	for i := range p.Kind.Arity() {
		out.V[i] = p.V[i] + (to.V[i]-p.V[i])*t
	}
	return out
}

// Finite reports whether every component is a finite number.
func (p Property) Finite() bool {
	for _, v := range p.V {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Equal reports whether p and o have the same kind and components within
// tolerance eps.
func (p Property) Equal(o Property, eps float64) bool {
	if p.Kind != o.Kind {
		return false
	}
	for i := range p.V {
		if math.Abs(p.V[i]-o.V[i]) > eps {
			return false
		}
	}
	return true
}

func (p Property) String() string {
	switch p.Kind.Arity() {
	case 1:
		return fmt.Sprintf("%s(%g)", p.Kind, p.V[0])
	case 2:
		return fmt.Sprintf("%s(%g,%g)", p.Kind, p.V[0], p.V[1])
	case 4:
		return fmt.Sprintf("%s(%g,%g,%g,%g)", p.Kind, p.V[0], p.V[1], p.V[2], p.V[3])
	default:
		return p.Kind.String()
	}
}

// Tweenable is implemented by host objects that receive interpolated
// values. Implementations ignore kinds they do not recognise.
type Tweenable interface {
	// Apply writes p into the object.
	Apply(p Property)
	// Get returns the current value for kind k.
	Get(k Kind) Property
}

// ApplyAll applies each property to t in order.
func ApplyAll(t Tweenable, props []Property) {
	if t == nil {
		return
	}
	for _, p := range props {
		t.Apply(p)
	}
}
