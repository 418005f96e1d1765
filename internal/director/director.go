package director

import (
	"fmt"
	"math"
)

var palette = []string{"tomato", "gold", "mediumseagreen", "dodgerblue", "orchid", "coral"}

var edges = []string{"left", "top", "right", "bottom"}

// Director generates demo scenarios: a grid of sprites that slide in one
// after another, plus a looping title.
type Director struct {
	ViewportWidth  int
	ViewportHeight int
	Entrance       float64 // seconds each sprite takes to enter
	MinStagger     float64 // seconds
	MaxStagger     float64 // seconds
}

// NewDirector creates a new Director with default settings
func NewDirector(viewportWidth, viewportHeight int) *Director {
	return &Director{
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		Entrance:       0.8,
		MinStagger:     0.1,
		MaxStagger:     1.0,
	}
}

// GenerateScenario lays out count sprites and staggers their entrance so
// the whole scenario fits totalDuration where the stagger bounds allow.
func (d *Director) GenerateScenario(count int, totalDuration float64) (*Scenario, error) {
	if count <= 0 {
		return nil, fmt.Errorf("no sprites requested")
	}
	if d.ViewportWidth <= 0 || d.ViewportHeight <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", d.ViewportWidth, d.ViewportHeight)
	}

	sprites := d.layout(count)
	stagger := d.calculateStagger(totalDuration, count)

	entrance := TimelineSpec{Name: "entrance", Stagger: stagger}
	for i, s := range sprites {
		entrance.Tweens = append(entrance.Tweens, TweenSpec{
			ID: s.ID,
			Effect: &EffectSpec{
				Name:     "slide_in",
				Duration: d.Entrance,
				Ease:     "back_out",
				Distance: math.Max(s.W, s.H) * 2,
				From:     edges[i%len(edges)],
			},
			Steps: []StepSpec{{
				Props:    []PropSpec{{Kind: "color", Color: palette[(i+1)%len(palette)]}},
				Duration: 0.4,
				Ease:     "sine_in_out",
			}},
		})
	}

	title := SpriteSpec{
		ID: "title",
		X:  float64(d.ViewportWidth) / 2,
		Y:  float64(d.ViewportHeight) * 0.05,
		W:  float64(d.ViewportWidth) / 4,
		H:  float64(d.ViewportHeight) / 12,
	}
	sprites = append(sprites, title)
	idle := TimelineSpec{
		Name: "title",
		Tweens: []TweenSpec{{
			ID: title.ID,
			Steps: []StepSpec{{
				Props:    []PropSpec{{Kind: "rotation", Value: []float64{10}}, {Kind: "alpha", Value: []float64{0.6}}},
				Duration: 1.0,
				Ease:     "sine_in_out",
			}},
			Repeat: -1,
			Yoyo:   true,
		}},
	}

	return &Scenario{
		Version:   "1.0",
		Name:      fmt.Sprintf("demo-%d", count),
		Width:     d.ViewportWidth,
		Height:    d.ViewportHeight,
		Sprites:   sprites,
		Timelines: []TimelineSpec{entrance, idle},
	}, nil
}

// layout places count sprites on a near-square grid below the title band.
func (d *Director) layout(count int) []SpriteSpec {
	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := (count + cols - 1) / cols

	top := float64(d.ViewportHeight) * 0.2
	cellW := float64(d.ViewportWidth) / float64(cols)
	cellH := (float64(d.ViewportHeight) - top) / float64(rows)
	size := math.Min(cellW, cellH) * 0.6

	sprites := make([]SpriteSpec, count)
	for i := range count {
		col, row := i%cols, i/cols
		sprites[i] = SpriteSpec{
			ID:    fmt.Sprintf("sprite_%d", i+1),
			X:     float64(col)*cellW + (cellW-size)/2,
			Y:     top + float64(row)*cellH + (cellH-size)/2,
			W:     size,
			H:     size,
			Color: palette[i%len(palette)],
		}
	}
	return sprites
}

// calculateStagger spreads entrances over the time left after the last
// sprite's own entrance and color change.
func (d *Director) calculateStagger(totalDuration float64, count int) float64 {
	if count < 2 {
		return 0
	}
	available := totalDuration - d.Entrance - 0.4
	if available <= 0 {
		available = totalDuration
	}

	stagger := available / float64(count-1)
	if stagger < d.MinStagger {
		stagger = d.MinStagger
	}
	if stagger > d.MaxStagger {
		stagger = d.MaxStagger
	}
	return stagger
}
