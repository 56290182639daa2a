// Package field holds the double-buffered U/V concentration grids and the
// boundary policies used to sample them.
package field

import (
	"errors"
	"fmt"
)

// DefaultMaxCells bounds a single grid when the caller passes no limit.
// Two buffers of 2 float32 channels at this size take 256 MiB.
const DefaultMaxCells = 1 << 24

var (
	// ErrInvalidDimensions is returned for grids with a non-positive side.
	ErrInvalidDimensions = errors.New("field: invalid grid dimensions")
	// ErrGridTooLarge is returned when a grid would exceed the cell budget.
	ErrGridTooLarge = errors.New("field: grid too large")
)

// Field is a fixed-size grid of (U, V) concentration pairs.
type Field struct {
	W, H int

	// Cells holds interleaved u,v pairs in row-major order.
	Cells []float32
}

// CheckSize validates grid dimensions against a cell budget.
// maxCells <= 0 selects DefaultMaxCells.
func CheckSize(w, h, maxCells int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}
	if w > maxCells/h {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrGridTooLarge, w, h, maxCells)
	}
	return nil
}

// New allocates a zeroed field.
func New(w, h int) (*Field, error) {
	if err := CheckSize(w, h, 0); err != nil {
		return nil, err
	}
	return &Field{W: w, H: h, Cells: make([]float32, w*h*2)}, nil
}

// Index returns the slice offset of the u channel for cell (x, y).
func (f *Field) Index(x, y int) int { return (y*f.W + x) * 2 }

// At returns the concentrations at an in-range cell.
func (f *Field) At(x, y int) (u, v float32) {
	i := f.Index(x, y)
	return f.Cells[i], f.Cells[i+1]
}

// Set writes the concentrations at an in-range cell.
func (f *Field) Set(x, y int, u, v float32) {
	i := f.Index(x, y)
	f.Cells[i] = u
	f.Cells[i+1] = v
}

// Sample reads the cell at a possibly out-of-range coordinate, resolving it
// with the given boundary policy first.
func (f *Field) Sample(x, y int, b Boundary) (u, v float32) {
	return f.At(Resolve(x, f.W, b), Resolve(y, f.H, b))
}

// Fill sets every cell to the same concentrations.
func (f *Field) Fill(u, v float32) {
	for i := 0; i < len(f.Cells); i += 2 {
		f.Cells[i] = u
		f.Cells[i+1] = v
	}
}

// CopyFrom copies src into f. Both fields must share dimensions.
func (f *Field) CopyFrom(src *Field) {
	copy(f.Cells, src.Cells)
}

// Channel extracts one channel (0 = u, 1 = v) into dst, growing it as needed.
func (f *Field) Channel(ch int, dst []float64) []float64 {
	n := f.W * f.H
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i := 0; i < n; i++ {
		dst[i] = float64(f.Cells[i*2+ch])
	}
	return dst
}

// Buffers owns the front (readable) and back (writable) fields.
// Passes read Front and write Back; Swap publishes the result.
type Buffers struct {
	fields [2]*Field
	front  int
}

// NewBuffers allocates both fields after checking the cell budget.
func NewBuffers(w, h, maxCells int) (*Buffers, error) {
	if err := CheckSize(w, h, maxCells); err != nil {
		return nil, err
	}
	a := &Field{W: w, H: h, Cells: make([]float32, w*h*2)}
	b := &Field{W: w, H: h, Cells: make([]float32, w*h*2)}
	return &Buffers{fields: [2]*Field{a, b}}, nil
}

// Front returns the current readable field.
func (b *Buffers) Front() *Field { return b.fields[b.front] }

// Back returns the field the next pass writes into.
func (b *Buffers) Back() *Field { return b.fields[1-b.front] }

// Swap makes the back field current.
func (b *Buffers) Swap() { b.front = 1 - b.front }

// Size returns the grid dimensions.
func (b *Buffers) Size() (int, int) {
	f := b.fields[0]
	return f.W, f.H
}
