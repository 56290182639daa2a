// Package renderer turns the concentration field into display pixels.
package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/pthm-cable/turing/camera"
	"github.com/pthm-cable/turing/field"
	"github.com/pthm-cable/turing/systems"
)

var black = color.RGBA{A: 255}

// Params is an immutable snapshot of the render settings for one frame.
type Params struct {
	Palette  int
	Relief   bool
	Boundary field.Boundary
	View     camera.View
}

// DefaultParams renders the whole field through the user gradient with
// relief lighting on.
func DefaultParams() Params {
	return Params{
		Palette:  UserPalette,
		Relief:   true,
		Boundary: field.Reflect,
		View:     camera.DefaultView(),
	}
}

// Compositor renders fields into RGBA images.
type Compositor struct {
	pool  *systems.Pool
	light Lighting
}

// NewCompositor creates a compositor that dispatches rows on pool.
// A nil pool renders single-threaded.
func NewCompositor(pool *systems.Pool, light Lighting) *Compositor {
	return &Compositor{pool: pool, light: light}
}

// Lighting returns the relief settings.
func (c *Compositor) Lighting() Lighting { return c.light }

// Render writes one frame of src into dst, one pixel per dst pixel.
// user is the editable gradient used when p selects UserPalette.
func (c *Compositor) Render(src *field.Field, user Gradient, p Params, dst *image.RGBA) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	g := Palette(p.Palette, user)

	c.pool.Run(h, func(y0, y1 int) {
		for py := y0; py < y1; py++ {
			row := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+py):]
			for px := 0; px < w; px++ {
				col := c.Pixel(src, g, p, (float32(px)+0.5)/float32(w), (float32(py)+0.5)/float32(h))
				o := px * 4
				row[o+0] = col.R
				row[o+1] = col.G
				row[o+2] = col.B
				row[o+3] = col.A
			}
		}
	})
}

// Pixel shades the normalized screen position (sx, sy).
func (c *Compositor) Pixel(src *field.Field, g Gradient, p Params, sx, sy float32) color.RGBA {
	fx, fy := p.View.ScreenToField(sx, sy)
	wrap := p.Boundary == field.Wrap

	if !wrap && (fx < 0 || fx >= 1 || fy < 0 || fy >= 1) {
		return black
	}

	v, ok := Reconstruct(src, fx, fy, wrap)
	if !ok {
		return black
	}
	base := g.Lookup(v)

	if p.Relief {
		cx := int(math.Floor(float64(fx * float32(src.W))))
		cy := int(math.Floor(float64(fy * float32(src.H))))
		m := c.light.BorderMargin
		if wrap || (cx >= m && cy >= m && cx < src.W-m && cy < src.H-m) {
			bnd := p.Boundary
			if wrap {
				cx = field.Resolve(cx, src.W, field.Wrap)
				cy = field.Resolve(cy, src.H, field.Wrap)
			}
			_, right := src.Sample(cx+1, cy, bnd)
			_, left := src.Sample(cx-1, cy, bnd)
			_, up := src.Sample(cx, cy-1, bnd)
			_, down := src.Sample(cx, cy+1, bnd)
			base = base.Scale(c.light.Shade((right-left)/2, (up-down)/2))
		}
	}
	return base.RGBA()
}

// Reconstruct estimates V at a normalized field coordinate with a 3x3
// Gaussian filter. With wrap set, taps fold toroidally; otherwise taps past
// the edge are dropped from the weighted sum. ok is false when no tap lands
// inside the field.
func Reconstruct(src *field.Field, fx, fy float32, wrap bool) (v float32, ok bool) {
	x := float64(fx)*float64(src.W) - 0.5
	y := float64(fy)*float64(src.H) - 0.5
	bx, by := math.Floor(x), math.Floor(y)
	frx, fry := x-bx, y-by
	ix, iy := int(bx), int(by)

	var sum, wsum float64
	for oy := -1; oy <= 1; oy++ {
		cy := iy + oy
		if wrap {
			cy = field.Resolve(cy, src.H, field.Wrap)
		} else if field.OutOfBounds(cy, src.H) {
			continue
		}
		dy := float64(oy) - fry
		for ox := -1; ox <= 1; ox++ {
			cx := ix + ox
			if wrap {
				cx = field.Resolve(cx, src.W, field.Wrap)
			} else if field.OutOfBounds(cx, src.W) {
				continue
			}
			dx := float64(ox) - frx
			w := math.Exp(-2 * (dx*dx + dy*dy))
			sum += float64(src.Cells[src.Index(cx, cy)+1]) * w
			wsum += w
		}
	}
	if wsum == 0 {
		return 0, false
	}
	return float32(sum / wsum), true
}
