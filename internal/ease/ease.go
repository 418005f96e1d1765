// Package ease provides the easing curves used to remap normalized tween
// progress. Every curve maps 0 to 0 and 1 to 1; Back, Bounce and Elastic
// curves overshoot the [0,1] range in between.
package ease

import (
	"fmt"
	"math"
	"strings"

	penner "github.com/fogleman/ease"
)

// Kind identifies an easing curve.
type Kind int

const (
	Linear Kind = iota
	SineIn
	SineOut
	SineInOut
	QuadIn
	QuadOut
	QuadInOut
	CubicIn
	CubicOut
	CubicInOut
	ExponentialIn
	ExponentialOut
	ExponentialInOut
	BackIn
	BackOut
	BackInOut
	BounceIn
	BounceOut
	BounceInOut
	ElasticIn
	ElasticOut
	ElasticInOut

	numKinds
)

var names = [numKinds]string{
	Linear:           "linear",
	SineIn:           "sine_in",
	SineOut:          "sine_out",
	SineInOut:        "sine_in_out",
	QuadIn:           "quad_in",
	QuadOut:          "quad_out",
	QuadInOut:        "quad_in_out",
	CubicIn:          "cubic_in",
	CubicOut:         "cubic_out",
	CubicInOut:       "cubic_in_out",
	ExponentialIn:    "exponential_in",
	ExponentialOut:   "exponential_out",
	ExponentialInOut: "exponential_in_out",
	BackIn:           "back_in",
	BackOut:          "back_out",
	BackInOut:        "back_in_out",
	BounceIn:         "bounce_in",
	BounceOut:        "bounce_out",
	BounceInOut:      "bounce_in_out",
	ElasticIn:        "elastic_in",
	ElasticOut:       "elastic_out",
	ElasticInOut:     "elastic_in_out",
}

// Kinds returns every known easing kind in declaration order.
func Kinds() []Kind {
	k := make([]Kind, numKinds)
	for i := range k {
		k[i] = Kind(i)
	}
	return k
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("ease(%d)", int(k))
	}
	return names[k]
}

// Parse returns the Kind named by s. Names are snake_case ("sine_in_out");
// dashes and case are ignored, and "expo" is accepted for "exponential".
func Parse(s string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.ReplaceAll(n, "-", "_")
	if n == "" {
		return Linear, nil
	}
	if strings.HasPrefix(n, "expo_") {
		n = "exponential_" + strings.TrimPrefix(n, "expo_")
	}
	for k, name := range names {
		if name == n {
			return Kind(k), nil
		}
	}
	return Linear, fmt.Errorf("unknown easing: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// curves dispatches each kind to its Penner function.
var curves = [numKinds]func(float64) float64{
	Linear:           penner.Linear,
	SineIn:           penner.InSine,
	SineOut:          penner.OutSine,
	SineInOut:        penner.InOutSine,
	QuadIn:           penner.InQuad,
	QuadOut:          penner.OutQuad,
	QuadInOut:        penner.InOutQuad,
	CubicIn:          penner.InCubic,
	CubicOut:         penner.OutCubic,
	CubicInOut:       penner.InOutCubic,
	ExponentialIn:    penner.InExpo,
	ExponentialOut:   penner.OutExpo,
	ExponentialInOut: penner.InOutExpo,
	BackIn:           penner.InBack,
	BackOut:          penner.OutBack,
	BackInOut:        penner.InOutBack,
	BounceIn:         penner.InBounce,
	BounceOut:        penner.OutBounce,
	BounceInOut:      penner.InOutBounce,
	ElasticIn:        penner.InElastic,
	ElasticOut:       penner.OutElastic,
	ElasticInOut:     penner.InOutElastic,
}

// Ease maps normalized time t to eased progress. t is clamped to [0,1]
// and the endpoints are returned exactly. Unknown kinds behave as Linear.
func (k Kind) Ease(t float64) float64 {
	switch {
	case math.IsNaN(t) || t <= 0:
		return 0
	case t >= 1:
		return 1
	case k < 0 || k >= numKinds:
		return t
	}
	return curves[k](t)
}
