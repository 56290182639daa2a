package renderer

import (
	"image/color"
	"sort"
)

// MaxStops is the gradient capacity. Longer stop lists are truncated.
const MaxStops = 8

// RGB is a linear colour with channels nominally in [0, 1].
type RGB struct {
	R, G, B float32
}

// White is the lookup result for an empty gradient.
var White = RGB{1, 1, 1}

// Scale multiplies every channel by s.
func (c RGB) Scale(s float32) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Lerp interpolates from c to o by t.
func (c RGB) Lerp(o RGB, t float32) RGB {
	return RGB{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// RGBA converts to an opaque 8-bit colour, clamping each channel.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 255}
}

func to8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Stop is one gradient control point.
type Stop struct {
	Pos   float32
	Color RGB
}

// Gradient is a piecewise-linear colour ramp with at most MaxStops stops,
// sorted by position. The zero value is an empty gradient.
type Gradient struct {
	stops []Stop
}

// NewGradient builds a gradient from stops. It sorts a copy stably by
// position and keeps the first MaxStops entries. truncated reports whether
// any stops were dropped.
func NewGradient(stops ...Stop) (g Gradient, truncated bool) {
	n := len(stops)
	if n > MaxStops {
		n = MaxStops
		truncated = true
	}
	s := make([]Stop, n)
	copy(s, stops[:n])
	sort.SliceStable(s, func(i, j int) bool { return s[i].Pos < s[j].Pos })
	return Gradient{stops: s}, truncated
}

// GradientFromFloats builds a gradient from parallel position and RGBA
// arrays (four floats per colour, alpha ignored). The stop count is the
// smallest of len(positions), len(colors)/4 and MaxStops; truncated reports
// whether any input was dropped.
func GradientFromFloats(positions, colors []float32) (g Gradient, truncated bool) {
	n := min(len(positions), len(colors)/4)
	truncated = len(positions) != len(colors)/4 || len(colors)%4 != 0
	stops := make([]Stop, n)
	for i := range stops {
		c := colors[i*4:]
		stops[i] = Stop{Pos: positions[i], Color: RGB{c[0], c[1], c[2]}}
	}
	g, capped := NewGradient(stops...)
	return g, truncated || capped
}

// Len returns the number of stops.
func (g Gradient) Len() int { return len(g.stops) }

// Stops returns a copy of the stops.
func (g Gradient) Stops() []Stop {
	return append([]Stop(nil), g.stops...)
}

// Lookup returns the colour at t. Values before the first stop take its
// colour and values past the last stop take the last colour. A zero-width
// segment yields its lower stop.
func (g Gradient) Lookup(t float32) RGB {
	s := g.stops
	switch len(s) {
	case 0:
		return White
	case 1:
		return s[0].Color
	}

	if !(t > s[0].Pos) {
		return s[0].Color
	}
	last := s[len(s)-1]
	if t >= last.Pos {
		return last.Color
	}

	for i := 0; i < len(s)-1; i++ {
		a, b := s[i], s[i+1]
		if t < a.Pos || t > b.Pos {
			continue
		}
		width := b.Pos - a.Pos
		if width <= 0 {
			return a.Color
		}
		return a.Color.Lerp(b.Color, (t-a.Pos)/width)
	}
	return last.Color
}
