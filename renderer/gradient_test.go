package renderer

import (
	"math"
	"testing"
)

func nearRGB(a, b RGB) bool {
	const eps = 1e-5
	return math.Abs(float64(a.R-b.R)) < eps &&
		math.Abs(float64(a.G-b.G)) < eps &&
		math.Abs(float64(a.B-b.B)) < eps
}

func TestLookupBlackWhite(t *testing.T) {
	g, _ := NewGradient(Stop{0, RGB{0, 0, 0}}, Stop{1, RGB{1, 1, 1}})

	cases := []struct {
		t    float32
		want RGB
	}{
		{0.5, RGB{0.5, 0.5, 0.5}},
		{0, RGB{0, 0, 0}},
		{1, RGB{1, 1, 1}},
		{-0.3, RGB{0, 0, 0}},
		{1.7, RGB{1, 1, 1}},
	}
	for _, tc := range cases {
		if got := g.Lookup(tc.t); !nearRGB(got, tc.want) {
			t.Errorf("Lookup(%g) = %+v, want %+v", tc.t, got, tc.want)
		}
	}
}

func TestLookupEmptyAndSingle(t *testing.T) {
	var empty Gradient
	if got := empty.Lookup(0.3); got != White {
		t.Errorf("empty gradient: got %+v, want white", got)
	}

	red := RGB{1, 0, 0}
	g, _ := NewGradient(Stop{0.7, red})
	for _, v := range []float32{-1, 0, 0.7, 1, 2} {
		if got := g.Lookup(v); got != red {
			t.Errorf("single stop at %g: got %+v", v, got)
		}
	}
}

func TestLookupZeroWidthSegment(t *testing.T) {
	lo := RGB{0, 0, 1}
	hi := RGB{1, 0, 0}
	g, _ := NewGradient(
		Stop{0, RGB{0, 0, 0}},
		Stop{0.5, lo},
		Stop{0.5, hi},
		Stop{1, RGB{1, 1, 1}},
	)
	got := g.Lookup(0.5)
	if math.IsNaN(float64(got.R)) {
		t.Fatal("zero-width segment produced NaN")
	}
	// Lower of the coincident pair wins at the shared position.
	if !nearRGB(got, lo) {
		t.Errorf("Lookup(0.5) = %+v, want %+v", got, lo)
	}
}

func TestNewGradientSortsAndTruncates(t *testing.T) {
	stops := make([]Stop, 10)
	for i := range stops {
		stops[i] = Stop{Pos: float32(9-i) / 9}
	}
	g, truncated := NewGradient(stops...)
	if !truncated {
		t.Error("expected truncation flag")
	}
	if g.Len() != MaxStops {
		t.Fatalf("expected %d stops, got %d", MaxStops, g.Len())
	}
	s := g.Stops()
	for i := 1; i < len(s); i++ {
		if s[i].Pos < s[i-1].Pos {
			t.Errorf("stops not sorted at %d", i)
		}
	}
}

func TestGradientFromFloats(t *testing.T) {
	pos := []float32{0, 0.5, 1}
	cols := []float32{
		1, 0, 0, 1,
		0, 1, 0, 1,
	}
	g, truncated := GradientFromFloats(pos, cols)
	if !truncated {
		t.Error("expected mismatched lengths to report truncation")
	}
	if g.Len() != 2 {
		t.Fatalf("expected 2 stops, got %d", g.Len())
	}
	if got := g.Lookup(0.25); !nearRGB(got, RGB{0.5, 0.5, 0}) {
		t.Errorf("Lookup(0.25) = %+v", got)
	}

	_, truncated = GradientFromFloats(pos[:2], cols)
	if truncated {
		t.Error("unexpected truncation for matched input")
	}
}

func TestPalettes(t *testing.T) {
	user := DefaultGradient()
	if Palette(UserPalette, user).Len() != user.Len() {
		t.Error("palette 0 should be the user gradient")
	}
	for i := 1; i < NumPalettes(); i++ {
		if err := ValidatePalette(i); err != nil {
			t.Errorf("palette %d: %v", i, err)
		}
		if Palette(i, user).Len() < 2 {
			t.Errorf("palette %d (%s) has too few stops", i, PaletteName(i))
		}
	}
	if err := ValidatePalette(NumPalettes()); err == nil {
		t.Error("expected error past the last palette")
	}
	if err := ValidatePalette(-1); err == nil {
		t.Error("expected error for negative palette")
	}
}

func TestRGBAConversion(t *testing.T) {
	c := RGB{-0.5, 0.5, 3}.RGBA()
	if c.R != 0 || c.G != 128 || c.B != 255 || c.A != 255 {
		t.Errorf("got %+v", c)
	}
}
