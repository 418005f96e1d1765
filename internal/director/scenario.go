package director

// Scenario is a complete animation description: the sprites on stage and
// the timelines that animate them.
type Scenario struct {
	Version   string         `yaml:"version" toml:"version"`
	Name      string         `yaml:"name,omitempty" toml:"name,omitempty"`
	Width     int            `yaml:"width,omitempty" toml:"width,omitempty"`
	Height    int            `yaml:"height,omitempty" toml:"height,omitempty"`
	Sprites   []SpriteSpec   `yaml:"sprites,omitempty" toml:"sprites,omitempty"`
	Timelines []TimelineSpec `yaml:"timelines" toml:"timelines"`
}

// SpriteSpec is the initial state of a sprite. Tweens may animate sprites
// that are not declared; those start from the sprite defaults.
type SpriteSpec struct {
	ID       string   `yaml:"id" toml:"id"`
	X        float64  `yaml:"x,omitempty" toml:"x,omitempty"`
	Y        float64  `yaml:"y,omitempty" toml:"y,omitempty"`
	W        float64  `yaml:"w,omitempty" toml:"w,omitempty"`
	H        float64  `yaml:"h,omitempty" toml:"h,omitempty"`
	Alpha    *float64 `yaml:"alpha,omitempty" toml:"alpha,omitempty"` // defaults to 1
	Rotation float64  `yaml:"rotation,omitempty" toml:"rotation,omitempty"`
	Color    string   `yaml:"color,omitempty" toml:"color,omitempty"`
}

// TimelineSpec groups tweens that share a clock and a layout.
type TimelineSpec struct {
	Name        string      `yaml:"name,omitempty" toml:"name,omitempty"`
	Align       string      `yaml:"align,omitempty" toml:"align,omitempty"`     // normal, sequence, start
	Stagger     float64     `yaml:"stagger,omitempty" toml:"stagger,omitempty"` // seconds between tween starts
	Repeat      int         `yaml:"repeat,omitempty" toml:"repeat,omitempty"`
	RepeatDelay float64     `yaml:"repeat_delay,omitempty" toml:"repeat_delay,omitempty"`
	Tweens      []TweenSpec `yaml:"tweens" toml:"tweens"`
}

// TweenSpec animates the sprite named ID. Effect steps, when set, run
// before the explicit Steps.
type TweenSpec struct {
	ID          string      `yaml:"id" toml:"id"`
	Effect      *EffectSpec `yaml:"effect,omitempty" toml:"effect,omitempty"`
	Steps       []StepSpec  `yaml:"steps,omitempty" toml:"steps,omitempty"`
	Repeat      int         `yaml:"repeat,omitempty" toml:"repeat,omitempty"` // -1 loops forever
	RepeatDelay float64     `yaml:"repeat_delay,omitempty" toml:"repeat_delay,omitempty"`
	Yoyo        bool        `yaml:"yoyo,omitempty" toml:"yoyo,omitempty"`
	Speed       float64     `yaml:"speed,omitempty" toml:"speed,omitempty"`
}

// EffectSpec selects a named preset.
type EffectSpec struct {
	Name     string  `yaml:"name" toml:"name"`
	Duration float64 `yaml:"duration,omitempty" toml:"duration,omitempty"`
	Ease     string  `yaml:"ease,omitempty" toml:"ease,omitempty"`
	Distance float64 `yaml:"distance,omitempty" toml:"distance,omitempty"`
	From     string  `yaml:"from,omitempty" toml:"from,omitempty"`
}

// StepSpec is one link of a tween chain. Times are in seconds.
type StepSpec struct {
	Props    []PropSpec `yaml:"props" toml:"props"`
	Duration float64    `yaml:"duration" toml:"duration"`
	Ease     string     `yaml:"ease,omitempty" toml:"ease,omitempty"`
	Delay    float64    `yaml:"delay,omitempty" toml:"delay,omitempty"`
}

// PropSpec is a target property. Color kinds may use Color (hex or name)
// instead of Value.
type PropSpec struct {
	Kind  string    `yaml:"kind" toml:"kind"`
	Value []float64 `yaml:"value,omitempty,flow" toml:"value,omitempty"`
	Color string    `yaml:"color,omitempty" toml:"color,omitempty"`
}
