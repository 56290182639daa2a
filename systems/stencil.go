package systems

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pthm-cable/turing/field"
)

// ErrUnknownStencil is returned for unrecognised stencil names or indices.
var ErrUnknownStencil = errors.New("systems: unknown stencil")

// Stencil selects one of the fixed Laplacian kernels.
type Stencil uint8

const (
	// NinePoint weights orthogonal neighbours 0.2 and diagonals 0.05.
	NinePoint Stencil = iota
	// Cross uses the four orthogonal neighbours.
	Cross
	// Diagonal uses the four diagonal neighbours.
	Diagonal
	// Spiral is an asymmetric 5x5 ring that twists patterns.
	Spiral
	// Skewed is a 3x3 kernel with per-direction weights that makes patterns drift.
	Skewed

	numStencils
)

// Tap is one weighted neighbour offset.
type Tap struct {
	DX, DY int
	W      float32
}

// Kernel is a net-zero Laplacian: Center equals minus the sum of tap weights.
type Kernel struct {
	Center float32
	Taps   []Tap
	// Reach is the largest |offset| among the taps.
	Reach int
}

var stencilNames = [numStencils]string{"nine_point", "cross", "diagonal", "spiral", "skewed"}

var kernels = [numStencils]Kernel{
	NinePoint: {
		Center: -1.0,
		Reach:  1,
		Taps: []Tap{
			{1, 0, 0.2}, {-1, 0, 0.2}, {0, 1, 0.2}, {0, -1, 0.2},
			{1, 1, 0.05}, {-1, 1, 0.05}, {1, -1, 0.05}, {-1, -1, 0.05},
		},
	},
	Cross: {
		Center: -0.8,
		Reach:  1,
		Taps:   []Tap{{1, 0, 0.2}, {-1, 0, 0.2}, {0, 1, 0.2}, {0, -1, 0.2}},
	},
	Diagonal: {
		Center: -0.8,
		Reach:  1,
		Taps:   []Tap{{1, 1, 0.2}, {-1, 1, 0.2}, {1, -1, 0.2}, {-1, -1, 0.2}},
	},
	Spiral: {
		Center: -60.0 / 60,
		Reach:  2,
		Taps: []Tap{
			{1, 0, 10.0 / 60}, {0, 1, 10.0 / 60},
			{-1, 0, 8.0 / 60}, {0, -1, 8.0 / 60},
			{2, 1, 6.0 / 60}, {-1, 2, 6.0 / 60},
			{-2, -1, 4.0 / 60}, {1, -2, 4.0 / 60},
			{2, 2, 2.0 / 60}, {-2, -2, 2.0 / 60},
		},
	},
	Skewed: {
		Center: -0.8,
		Reach:  1,
		Taps: []Tap{
			{1, 0, 0.20}, {0, -1, 0.16}, {-1, 0, 0.12}, {0, 1, 0.08},
			{1, -1, 0.07}, {-1, -1, 0.06}, {-1, 1, 0.05}, {1, 1, 0.06},
		},
	},
}

func (s Stencil) String() string {
	if s < numStencils {
		return stencilNames[s]
	}
	return fmt.Sprintf("Stencil(%d)", uint8(s))
}

// Valid reports whether s names a known kernel.
func (s Stencil) Valid() bool { return s < numStencils }

// Kernel returns the weights for s. Unknown selectors fall back to NinePoint.
func (s Stencil) Kernel() Kernel {
	if !s.Valid() {
		return kernels[NinePoint]
	}
	return kernels[s]
}

// Stencils lists every kernel in selector order.
func Stencils() []Stencil {
	out := make([]Stencil, numStencils)
	for i := range out {
		out[i] = Stencil(i)
	}
	return out
}

// ParseStencil maps a config name to a Stencil.
func ParseStencil(s string) (Stencil, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range stencilNames {
		if n == name {
			return Stencil(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStencil, s)
}

// StencilFromIndex maps a selector index to a Stencil.
func StencilFromIndex(i int) (Stencil, error) {
	if i < 0 || i >= int(numStencils) {
		return 0, fmt.Errorf("%w: index %d", ErrUnknownStencil, i)
	}
	return Stencil(i), nil
}

// Laplacian estimates the Laplacian of both channels at (x, y). Neighbours
// outside the grid are read through the boundary policy.
func Laplacian(src *field.Field, x, y int, s Stencil, b field.Boundary) (lu, lv float32) {
	k := s.Kernel()
	u, v := src.At(x, y)
	lu = u * k.Center
	lv = v * k.Center

	if inBox(x, y, src.W, src.H, k.Reach) {
		for _, t := range k.Taps {
			i := src.Index(x+t.DX, y+t.DY)
			lu += src.Cells[i] * t.W
			lv += src.Cells[i+1] * t.W
		}
		return lu, lv
	}

	for _, t := range k.Taps {
		nu, nv := src.Sample(x+t.DX, y+t.DY, b)
		lu += nu * t.W
		lv += nv * t.W
	}
	return lu, lv
}
