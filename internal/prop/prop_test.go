package prop

import (
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKindArityAndBase(t *testing.T) {
	tests := []struct {
		kind     Kind
		arity    int
		base     Kind
		relative bool
	}{
		{Position, 2, Position, false},
		{Size, 2, Size, false},
		{Alpha, 1, Alpha, false},
		{Rotation, 1, Rotation, false},
		{Color, 4, Color, false},
		{Shift, 2, Position, true},
		{Grow, 2, Size, true},
		{Float, 1, Float, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Arity(); got != tt.arity {
				t.Errorf("Arity() = %d, want %d", got, tt.arity)
			}
			if got := tt.kind.Base(); got != tt.base {
				t.Errorf("Base() = %v, want %v", got, tt.base)
			}
			if got := tt.kind.Relative(); got != tt.relative {
				t.Errorf("Relative() = %v, want %v", got, tt.relative)
			}
		})
	}

	if Kind(42).Arity() != 0 || Kind(42).Valid() {
		t.Error("unknown kind should be invalid with zero arity")
	}
}

func TestParseKind(t *testing.T) {
	for k := Position; k < numKinds; k++ {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if got, _ := ParseKind("Pos"); got != Position {
		t.Errorf("ParseKind(Pos) = %v", got)
	}
	if _, err := ParseKind("scale"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestLerp(t *testing.T) {
	from := Pos(0, 0)
	to := Pos(400, 100)

	tests := []struct {
		t    float64
		want Property
	}{
		{0, Pos(0, 0)},
		{0.5, Pos(200, 50)},
		{1, Pos(400, 100)},
		{1.1, Pos(440, 110)},
	}

	for _, tt := range tests {
		got := from.Lerp(to, tt.t)
		if !got.Equal(tt.want, 1e-9) {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestLerpIgnoresUnusedComponents(t *testing.T) {
	a := Opacity(0)
	b := Property{Kind: Alpha, V: [4]float64{1, 99, 99, 99}}
	got := a.Lerp(b, 0.5)
	if diff := cmp.Diff(Opacity(0.5), got); diff != "" {
		t.Errorf("Lerp mismatch (-want +got):\n%s", diff)
	}
}

func TestAdd(t *testing.T) {
	got := Pos(10, 20).Add(Move(5, -5)).Add(Move(1, 1))
	if diff := cmp.Diff(Pos(16, 16), got); diff != "" {
		t.Errorf("Add mismatch (-want +got):\n%s", diff)
	}
}

func TestFinite(t *testing.T) {
	if !Pos(1, 2).Finite() {
		t.Error("Pos(1,2) should be finite")
	}
	if Pos(math.NaN(), 0).Finite() {
		t.Error("NaN should not be finite")
	}
	if Opacity(math.Inf(1)).Finite() {
		t.Error("Inf should not be finite")
	}
}

func TestZero(t *testing.T) {
	if got := Zero(Alpha); got.V[0] != 1 {
		t.Errorf("Zero(Alpha) = %v, want opaque", got)
	}
	if got := Zero(Color); got.V[3] != 1 {
		t.Errorf("Zero(Color) = %v, want opaque", got)
	}
	if got := Zero(Position); got != Pos(0, 0) {
		t.Errorf("Zero(Position) = %v", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#f00", color.NRGBA{255, 0, 0, 255}, false},
		{"#0f08", color.NRGBA{0, 255, 0, 136}, false},
		{"#336699", color.NRGBA{0x33, 0x66, 0x99, 255}, false},
		{"33669980", color.NRGBA{0x33, 0x66, 0x99, 0x80}, false},
		{"tomato", color.NRGBA{255, 99, 71, 255}, false},
		{"Navy", color.NRGBA{0, 0, 128, 255}, false},
		{"#12345", color.NRGBA{}, true},
		{"notacolor", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if p.Kind != Color {
				t.Fatalf("kind = %v, want color", p.Kind)
			}
			if got := ToColor(p); got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	p := Packed(0x336699cc)
	if got := Hex(p); got != "#336699cc" {
		t.Errorf("Hex = %s", got)
	}
}

type box struct {
	pos   Property
	alpha Property
}

func (b *box) Apply(p Property) {
	switch p.Kind {
	case Position:
		b.pos = p
	case Alpha:
		b.alpha = p
	}
}

func (b *box) Get(k Kind) Property {
	switch k {
	case Position:
		return b.pos
	case Alpha:
		return b.alpha
	}
	return Zero(k)
}

func TestApplyAll(t *testing.T) {
	b := &box{}
	ApplyAll(b, []Property{Pos(3, 4), Opacity(0.5), Rotate(90)})
	if b.pos != Pos(3, 4) || b.alpha != Opacity(0.5) {
		t.Errorf("ApplyAll did not apply: %+v", b)
	}
	ApplyAll(nil, []Property{Pos(1, 1)})
}
