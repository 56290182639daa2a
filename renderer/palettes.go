package renderer

import (
	"errors"
	"fmt"
)

// ErrUnknownPalette is returned for palette indices with no palette.
var ErrUnknownPalette = errors.New("renderer: unknown palette")

// UserPalette is the palette index that renders with the editable gradient.
const UserPalette = 0

// DefaultGradient is the rainbow ramp the editable gradient starts with.
func DefaultGradient() Gradient {
	g, _ := NewGradient(
		Stop{0.0, RGB{0.2, 0.0, 0.3}}, // dark purple
		Stop{0.2, RGB{0.5, 0.0, 1.0}}, // purple
		Stop{0.4, RGB{0.0, 0.5, 1.0}}, // blue
		Stop{0.6, RGB{0.0, 1.0, 0.8}}, // cyan
		Stop{0.8, RGB{1.0, 0.3, 0.0}}, // orange
		Stop{1.0, RGB{1.0, 0.0, 0.0}}, // red
	)
	return g
}

type namedPalette struct {
	name  string
	stops []Stop
}

// Built-in palettes, selected by index 1..len.
var builtinPalettes = []namedPalette{
	{"grayscale", []Stop{
		{0, RGB{0, 0, 0}},
		{1, RGB{1, 1, 1}},
	}},
	{"inferno", []Stop{
		{0.00, RGB{0.00, 0.00, 0.02}},
		{0.25, RGB{0.34, 0.06, 0.43}},
		{0.50, RGB{0.73, 0.21, 0.33}},
		{0.75, RGB{0.98, 0.55, 0.04}},
		{1.00, RGB{0.99, 1.00, 0.64}},
	}},
	{"ocean", []Stop{
		{0.0, RGB{0.00, 0.03, 0.10}},
		{0.3, RGB{0.00, 0.25, 0.45}},
		{0.6, RGB{0.10, 0.60, 0.75}},
		{1.0, RGB{0.85, 1.00, 1.00}},
	}},
	{"lichen", []Stop{
		{0.0, RGB{0.95, 0.93, 0.85}},
		{0.4, RGB{0.60, 0.70, 0.35}},
		{0.7, RGB{0.25, 0.40, 0.15}},
		{1.0, RGB{0.05, 0.10, 0.05}},
	}},
}

// NumPalettes is the count of selectable palettes, including the user one.
func NumPalettes() int { return len(builtinPalettes) + 1 }

// PaletteName returns the display name for a palette index.
func PaletteName(i int) string {
	if i == UserPalette {
		return "custom"
	}
	if i < 0 || i > len(builtinPalettes) {
		return fmt.Sprintf("palette(%d)", i)
	}
	return builtinPalettes[i-1].name
}

// ValidatePalette checks that i selects a palette.
func ValidatePalette(i int) error {
	if i < 0 || i >= NumPalettes() {
		return fmt.Errorf("%w: %d", ErrUnknownPalette, i)
	}
	return nil
}

// Palette returns the gradient for index i. Index UserPalette returns user.
// Unknown indices fall back to user so rendering never fails.
func Palette(i int, user Gradient) Gradient {
	if i <= UserPalette || i > len(builtinPalettes) {
		return user
	}
	g, _ := NewGradient(builtinPalettes[i-1].stops...)
	return g
}
