package field

import (
	"errors"
	"testing"
)

func TestResolveAlwaysInRange(t *testing.T) {
	for _, b := range []Boundary{Wrap, Clamp, Reflect} {
		for _, size := range []int{1, 2, 3, 7, 64} {
			for coord := -3 * size; coord <= 3*size; coord++ {
				got := Resolve(coord, size, b)
				if got < 0 || got >= size {
					t.Fatalf("%s: Resolve(%d, %d) = %d, out of range", b, coord, size, got)
				}
			}
		}
	}
}

func TestResolveWrap(t *testing.T) {
	size := 16
	if got := Resolve(-1, size, Wrap); got != size-1 {
		t.Errorf("Resolve(-1) = %d, want %d", got, size-1)
	}
	if got := Resolve(size, size, Wrap); got != 0 {
		t.Errorf("Resolve(size) = %d, want 0", got)
	}
	if got := Resolve(-size-2, size, Wrap); got != size-2 {
		t.Errorf("Resolve(-size-2) = %d, want %d", got, size-2)
	}
}

func TestResolveClamp(t *testing.T) {
	size := 16
	if got := Resolve(-5, size, Clamp); got != 0 {
		t.Errorf("Resolve(-5) = %d, want 0", got)
	}
	if got := Resolve(size+5, size, Clamp); got != size-1 {
		t.Errorf("Resolve(size+5) = %d, want %d", got, size-1)
	}
}

func TestResolveReflect(t *testing.T) {
	// size 5: indices 0..4, mirrored without repeating the edge cell.
	cases := []struct {
		coord, want int
	}{
		{-1, 1},
		{-2, 2},
		{-4, 4},
		{-5, 3}, // reflects off 0 to 5, then off 4 to 3
		{5, 3},
		{6, 2},
		{8, 0},
		{9, 1},
		{-9, 1},
	}
	for _, tc := range cases {
		if got := Resolve(tc.coord, 5, Reflect); got != tc.want {
			t.Errorf("Resolve(%d, 5) = %d, want %d", tc.coord, got, tc.want)
		}
	}
	if got := Resolve(-3, 1, Reflect); got != 0 {
		t.Errorf("single-cell reflect = %d, want 0", got)
	}
}

func TestParseBoundary(t *testing.T) {
	for _, name := range []string{"wrap", "Clamp", " reflect "} {
		if _, err := ParseBoundary(name); err != nil {
			t.Errorf("ParseBoundary(%q): %v", name, err)
		}
	}
	if _, err := ParseBoundary("mirror"); !errors.Is(err, ErrUnknownBoundary) {
		t.Errorf("expected ErrUnknownBoundary, got %v", err)
	}
	if _, err := BoundaryFromIndex(3); !errors.Is(err, ErrUnknownBoundary) {
		t.Errorf("expected ErrUnknownBoundary for index 3, got %v", err)
	}
	if b, err := BoundaryFromIndex(2); err != nil || b != Reflect {
		t.Errorf("BoundaryFromIndex(2) = %v, %v", b, err)
	}
}

func TestOutOfBounds(t *testing.T) {
	if !OutOfBounds(-1, 4) || !OutOfBounds(4, 4) {
		t.Error("expected edges outside [0,4) to be out of bounds")
	}
	if OutOfBounds(0, 4) || OutOfBounds(3, 4) {
		t.Error("expected in-range coordinates to be in bounds")
	}
}
