// Package sprite provides a headless animated object for driving and
// inspecting tweens without a renderer.
package sprite

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/ivlev/tweek/internal/prop"
)

// Sprite is a rectangle with the properties a host would draw. It
// implements prop.Tweenable.
type Sprite struct {
	ID       string
	X, Y     float64
	W, H     float64
	Alpha    float64
	Rotation float64 // degrees
	Color    prop.Property
	Value    float64
}

// New returns an opaque white sprite at the origin.
func New(id string) *Sprite {
	return &Sprite{ID: id, Alpha: 1, Color: prop.RGBA(1, 1, 1, 1)}
}

// Apply writes p into the sprite. Relative kinds are added to their base.
func (s *Sprite) Apply(p prop.Property) {
	switch p.Kind {
	case prop.Position:
		s.X, s.Y = p.V[0], p.V[1]
	case prop.Shift:
		s.X += p.V[0]
		s.Y += p.V[1]
	case prop.Size:
		s.W, s.H = p.V[0], p.V[1]
	case prop.Grow:
		s.W += p.V[0]
		s.H += p.V[1]
	case prop.Alpha:
		s.Alpha = p.V[0]
	case prop.Rotation:
		s.Rotation = p.V[0]
	case prop.Color:
		s.Color = p
	case prop.Float:
		s.Value = p.V[0]
	}
}

// Get returns the current value for k. Relative kinds read as zero deltas.
func (s *Sprite) Get(k prop.Kind) prop.Property {
	switch k {
	case prop.Position:
		return prop.Pos(s.X, s.Y)
	case prop.Size:
		return prop.Dim(s.W, s.H)
	case prop.Alpha:
		return prop.Opacity(s.Alpha)
	case prop.Rotation:
		return prop.Rotate(s.Rotation)
	case prop.Color:
		c := s.Color
		c.Kind = prop.Color
		return c
	case prop.Float:
		return prop.Scalar(s.Value)
	default:
		return prop.Property{Kind: k}
	}
}

// NRGBA returns the sprite color with its alpha multiplied in.
func (s *Sprite) NRGBA() color.NRGBA {
	c := s.Color
	c.V[3] *= s.Alpha
	return prop.ToColor(c)
}

// Bounds returns the top-left and bottom-right corners.
func (s *Sprite) Bounds() (x0, y0, x1, y1 float64) {
	return s.X, s.Y, s.X + s.W, s.Y + s.H
}

func (s *Sprite) String() string {
	return fmt.Sprintf("%s pos=(%g,%g) size=(%g,%g) alpha=%g rot=%g color=%s",
		s.ID, s.X, s.Y, s.W, s.H, s.Alpha, s.Rotation, prop.Hex(s.Color))
}

// Stage is a set of sprites keyed by id.
type Stage struct {
	sprites map[string]*Sprite
}

// NewStage returns an empty Stage.
func NewStage() *Stage {
	return &Stage{sprites: make(map[string]*Sprite)}
}

// Add registers s, replacing any sprite with the same id.
func (st *Stage) Add(s *Sprite) {
	st.sprites[s.ID] = s
}

// Get returns the sprite with the given id.
func (st *Stage) Get(id string) (*Sprite, bool) {
	s, ok := st.sprites[id]
	return s, ok
}

// IDs returns the sprite ids in sorted order.
func (st *Stage) IDs() []string {
	ids := make([]string, 0, len(st.sprites))
	for id := range st.sprites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of sprites.
func (st *Stage) Len() int { return len(st.sprites) }
