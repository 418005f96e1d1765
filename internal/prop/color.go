package prop

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// RGBA returns a Color property. Components are in [0,1].
func RGBA(r, g, b, a float64) Property {
	return Property{Kind: Color, V: [4]float64{r, g, b, a}}
}

// FromColor converts a standard color.Color to a Color property.
func FromColor(c color.Color) Property {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(float64(n.R)/255, float64(n.G)/255, float64(n.B)/255, float64(n.A)/255)
}

// ToColor converts a Color property to color.NRGBA, clamping components.
func ToColor(p Property) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(p.V[0] * 255)),
		G: uint8(clamp255(p.V[1] * 255)),
		B: uint8(clamp255(p.V[2] * 255)),
		A: uint8(clamp255(p.V[3] * 255)),
	}
}

// Packed returns a Color property from a 0xRRGGBBAA value.
func Packed(v uint32) Property {
	return RGBA(
		float64(v>>24&0xff)/255,
		float64(v>>16&0xff)/255,
		float64(v>>8&0xff)/255,
		float64(v&0xff)/255,
	)
}

// ParseColor parses a hex color ("#rgb", "#rgba", "#rrggbb", "#rrggbbaa")
// or an SVG color name such as "tomato".
func ParseColor(s string) (Property, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Property{}, fmt.Errorf("empty color")
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return FromColor(c), nil
	}

	hex := strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Property{}, fmt.Errorf("invalid color %q", s)
	}
	switch len(hex) {
	case 3:
		r, g, b := v>>8&0xf, v>>4&0xf, v&0xf
		return Packed(uint32((r*17)<<24 | (g*17)<<16 | (b*17)<<8 | 0xff)), nil
	case 4:
		r, g, b, a := v>>12&0xf, v>>8&0xf, v>>4&0xf, v&0xf
		return Packed(uint32((r*17)<<24 | (g*17)<<16 | (b*17)<<8 | a*17)), nil
	case 6:
		return Packed(uint32(v<<8 | 0xff)), nil
	case 8:
		return Packed(uint32(v)), nil
	default:
		return Property{}, fmt.Errorf("invalid color %q", s)
	}
}

// Hex formats a Color property as "#rrggbbaa".
func Hex(p Property) string {
	c := ToColor(p)
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func clamp255(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return v + 0.5
	}
}
