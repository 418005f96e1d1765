// Package trace samples a running coordinator at a fixed frame rate and
// records the state of every sprite on stage.
package trace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ivlev/tweek/internal/clock"
	"github.com/ivlev/tweek/internal/coordinator"
	"github.com/ivlev/tweek/internal/logging"
	"github.com/ivlev/tweek/internal/prop"
	"github.com/ivlev/tweek/internal/sprite"
	"github.com/ivlev/tweek/internal/timeline"
)

// MaxFrames bounds a single trace.
const MaxFrames = 1 << 20

// ErrTooManyFrames is returned when fps*duration exceeds MaxFrames.
var ErrTooManyFrames = errors.New("trace: too many frames")

// State is a sprite snapshot.
type State struct {
	ID       string  `yaml:"id"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	W        float64 `yaml:"w"`
	H        float64 `yaml:"h"`
	Alpha    float64 `yaml:"alpha"`
	Rotation float64 `yaml:"rotation"`
	Color    string  `yaml:"color"`
	Value    float64 `yaml:"value,omitempty"`
}

// Snapshot records the current state of s.
func Snapshot(s *sprite.Sprite) State {
	return State{
		ID:       s.ID,
		X:        s.X,
		Y:        s.Y,
		W:        s.W,
		H:        s.H,
		Alpha:    s.Alpha,
		Rotation: s.Rotation,
		Color:    prop.Hex(s.Color),
		Value:    s.Value,
	}
}

// Frame is the stage at one sample time.
type Frame struct {
	Index   int      `yaml:"index"`
	Time    float64  `yaml:"time"` // seconds
	Sprites []State  `yaml:"sprites"`
	Events  []string `yaml:"events,omitempty"`
}

// Trace is a sampled run.
type Trace struct {
	Name     string  `yaml:"name,omitempty"`
	FPS      int     `yaml:"fps"`
	Duration float64 `yaml:"duration"` // seconds
	Frames   []Frame `yaml:"frames"`
}

// Last returns the final frame, or a zero Frame for an empty trace.
func (tr *Trace) Last() Frame {
	if len(tr.Frames) == 0 {
		return Frame{}
	}
	return tr.Frames[len(tr.Frames)-1]
}

// Sampler drives a coordinator with a manual clock, one Update per frame.
type Sampler struct {
	FPS int
	// Duration to sample. Zero samples the coordinator's TotalTime.
	Duration time.Duration
}

// Sample plays c from clk's current time and records fps*duration+1 frames,
// including both ends. Sprite values are pulled with GetUpdate and applied
// to the stage after each Update. clk must be the clock the timelines of c
// were built with.
func (s Sampler) Sample(ctx context.Context, c *coordinator.Coordinator, stage *sprite.Stage, clk *clock.Manual) (*Trace, error) {
	if s.FPS <= 0 {
		return nil, fmt.Errorf("trace: invalid fps %d", s.FPS)
	}
	duration := s.Duration
	if duration <= 0 {
		duration = c.TotalTime()
	}
	// Bound duration before multiplying so fps*duration cannot overflow.
	if duration > time.Duration(MaxFrames)*time.Second/time.Duration(s.FPS) {
		return nil, fmt.Errorf("%w: %v at %d fps", ErrTooManyFrames, duration, s.FPS)
	}
	n := int(duration * time.Duration(s.FPS) / time.Second)

	tr := &Trace{FPS: s.FPS, Duration: duration.Seconds(), Frames: make([]Frame, 0, n+1)}
	ids := stage.IDs()
	start := clk.Now()
	tctx := timeline.NewContext()

	c.Play()
	for i := 0; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		at := time.Duration(i) * time.Second / time.Duration(s.FPS)
		clk.Set(start.Add(at))
		c.Update(tctx)

		f := Frame{Index: i, Time: at.Seconds(), Sprites: make([]State, 0, len(ids))}
		for _, id := range ids {
			sp, _ := stage.Get(id)
			if props, ok := c.GetUpdate(id); ok {
				prop.ApplyAll(sp, props)
			}
			f.Sprites = append(f.Sprites, Snapshot(sp))
		}
		for _, e := range tctx.Events {
			f.Events = append(f.Events, e.String())
		}
		tr.Frames = append(tr.Frames, f)
	}
	logging.Logger().Debug("trace sampled", "frames", len(tr.Frames), "sprites", len(ids))
	return tr, nil
}
