package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/turing/field"
)

func TestKernelsNetZero(t *testing.T) {
	for _, s := range Stencils() {
		k := s.Kernel()
		sum := float64(k.Center)
		for _, tap := range k.Taps {
			sum += float64(tap.W)
		}
		if math.Abs(sum) > 1e-6 {
			t.Errorf("%s: weights sum to %g, want 0", s, sum)
		}
	}
}

func TestKernelReachCoversTaps(t *testing.T) {
	for _, s := range Stencils() {
		k := s.Kernel()
		for _, tap := range k.Taps {
			if abs(tap.DX) > k.Reach || abs(tap.DY) > k.Reach {
				t.Errorf("%s: tap (%d,%d) beyond reach %d", s, tap.DX, tap.DY, k.Reach)
			}
		}
	}
}

func TestSpiralHasTenTaps(t *testing.T) {
	if n := len(Spiral.Kernel().Taps); n != 10 {
		t.Errorf("expected 10 spiral taps, got %d", n)
	}
}

func TestLaplacianUniformFieldIsZero(t *testing.T) {
	f, _ := field.New(8, 8)
	f.Fill(0.7, 0.3)

	for _, s := range Stencils() {
		for _, b := range []field.Boundary{field.Wrap, field.Clamp, field.Reflect} {
			for _, pt := range [][2]int{{0, 0}, {7, 7}, {3, 4}, {0, 5}} {
				lu, lv := Laplacian(f, pt[0], pt[1], s, b)
				if math.Abs(float64(lu)) > 1e-6 || math.Abs(float64(lv)) > 1e-6 {
					t.Errorf("%s/%s at %v: got (%g,%g), want 0", s, b, pt, lu, lv)
				}
			}
		}
	}
}

func TestLaplacianEdgeMatchesInteriorPath(t *testing.T) {
	// A wrapped field shifted by one cell must give the same Laplacian at the
	// edge as the unshifted field gives in the interior.
	const n = 9
	a, _ := field.New(n, n)
	b, _ := field.New(n, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := float32((x*7+y*3)%11) / 11
			a.Set(x, y, 1-v, v)
			b.Set((x+n-4)%n, (y+n-4)%n, 1-v, v)
		}
	}
	for _, s := range Stencils() {
		au, av := Laplacian(a, 4, 4, s, field.Wrap)
		bu, bv := Laplacian(b, 0, 0, s, field.Wrap)
		if math.Abs(float64(au-bu)) > 1e-5 || math.Abs(float64(av-bv)) > 1e-5 {
			t.Errorf("%s: interior (%g,%g) != edge (%g,%g)", s, au, av, bu, bv)
		}
	}
}

func TestParseStencil(t *testing.T) {
	for _, s := range Stencils() {
		got, err := ParseStencil(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStencil(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStencil("hexagonal"); !errors.Is(err, ErrUnknownStencil) {
		t.Errorf("expected ErrUnknownStencil, got %v", err)
	}
	if _, err := StencilFromIndex(5); !errors.Is(err, ErrUnknownStencil) {
		t.Errorf("expected ErrUnknownStencil for index 5, got %v", err)
	}
	if _, err := StencilFromIndex(-1); !errors.Is(err, ErrUnknownStencil) {
		t.Errorf("expected ErrUnknownStencil for index -1, got %v", err)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
