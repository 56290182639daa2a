package field

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBoundary is returned for unrecognised boundary names or indices.
var ErrUnknownBoundary = errors.New("field: unknown boundary mode")

// Boundary selects how out-of-grid coordinates are resolved.
type Boundary uint8

const (
	// Wrap treats the grid as a torus.
	Wrap Boundary = iota
	// Clamp repeats the edge cell.
	Clamp
	// Reflect mirrors about the edge cells without repeating them.
	Reflect

	numBoundaries
)

var boundaryNames = [numBoundaries]string{"wrap", "clamp", "reflect"}

func (b Boundary) String() string {
	if b < numBoundaries {
		return boundaryNames[b]
	}
	return fmt.Sprintf("Boundary(%d)", uint8(b))
}

// Valid reports whether b is a known mode.
func (b Boundary) Valid() bool { return b < numBoundaries }

// Boundaries lists every boundary mode in index order.
func Boundaries() []Boundary {
	return []Boundary{Wrap, Clamp, Reflect}
}

// ParseBoundary maps a config name to a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range boundaryNames {
		if n == name {
			return Boundary(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBoundary, s)
}

// BoundaryFromIndex maps a selector index (0=wrap, 1=clamp, 2=reflect).
func BoundaryFromIndex(i int) (Boundary, error) {
	if i < 0 || i >= int(numBoundaries) {
		return 0, fmt.Errorf("%w: index %d", ErrUnknownBoundary, i)
	}
	return Boundary(i), nil
}

// Resolve maps coord into [0, size) under the boundary policy.
//
// Reflect is the closed form of mirroring about both edges until the
// coordinate lands in range: the pattern repeats every 2*(size-1) cells.
func Resolve(coord, size int, b Boundary) int {
	if coord >= 0 && coord < size {
		return coord
	}
	switch b {
	case Wrap:
		return ((coord % size) + size) % size
	case Reflect:
		if size == 1 {
			return 0
		}
		period := 2 * (size - 1)
		c := ((coord % period) + period) % period
		if c >= size {
			c = period - c
		}
		return c
	default:
		if coord < 0 {
			return 0
		}
		return size - 1
	}
}

// OutOfBounds reports whether coord lies outside [0, size) before resolution.
// The compositor uses this to blank pixels outside the field in non-wrap modes.
func OutOfBounds(coord, size int) bool {
	return coord < 0 || coord >= size
}
