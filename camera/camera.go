// Package camera provides the zoom/pan viewport onto the field.
package camera

import "math"

const (
	// MinZoom shows the whole field; the view never zooms out past it.
	MinZoom = 1.0
	// PanLimit bounds the pan offset on each axis, in field widths.
	PanLimit = 1.0
)

// View is the inverse transform from normalized screen space to normalized
// field space: field = (screen - 0.5)/Zoom + 0.5 + Pan.
type View struct {
	Zoom       float32
	PanX, PanY float32
}

// DefaultView shows the whole field, centred.
func DefaultView() View {
	return View{Zoom: 1}
}

// ScreenToField maps a normalized screen coordinate to a normalized field
// coordinate. The result is outside [0, 1) when the screen point lies
// beyond the field edge.
func (v View) ScreenToField(sx, sy float32) (fx, fy float32) {
	z := v.zoom()
	fx = (sx-0.5)/z + 0.5 + v.PanX
	fy = (sy-0.5)/z + 0.5 + v.PanY
	return fx, fy
}

// FieldToScreen is the inverse of ScreenToField.
func (v View) FieldToScreen(fx, fy float32) (sx, sy float32) {
	z := v.zoom()
	sx = (fx-v.PanX-0.5)*z + 0.5
	sy = (fy-v.PanY-0.5)*z + 0.5
	return sx, sy
}

// Clamped returns v with zoom and pan forced into their legal ranges.
func (v View) Clamped() View {
	return View{
		Zoom: ClampZoom(v.Zoom),
		PanX: ClampPan(v.PanX),
		PanY: ClampPan(v.PanY),
	}
}

func (v View) zoom() float32 {
	if v.Zoom < MinZoom {
		return MinZoom
	}
	return v.Zoom
}

// ClampZoom enforces the lower zoom bound. NaN maps to MinZoom.
func ClampZoom(z float32) float32 {
	if !(z >= MinZoom) {
		return MinZoom
	}
	return z
}

// ClampPan restricts a pan offset to [-PanLimit, PanLimit]. NaN maps to 0.
func ClampPan(p float32) float32 {
	if p != p {
		return 0
	}
	return clamp(p, -PanLimit, PanLimit)
}

// Camera tracks the view for a window of the given pixel size.
type Camera struct {
	View

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Upper zoom bound; the lower bound is always MinZoom.
	MaxZoom float32
}

// New creates a camera showing the whole field.
func New(viewportW, viewportH, maxZoom float32) *Camera {
	if maxZoom < MinZoom {
		maxZoom = MinZoom
	}
	return &Camera{
		View:      DefaultView(),
		ViewportW: viewportW,
		ViewportH: viewportH,
		MaxZoom:   maxZoom,
	}
}

// ScreenToField converts a pixel position to a normalized field coordinate.
func (c *Camera) ScreenToField(px, py float32) (fx, fy float32) {
	return c.View.ScreenToField(px/c.ViewportW, py/c.ViewportH)
}

// FieldToScreen converts a normalized field coordinate to a pixel position.
func (c *Camera) FieldToScreen(fx, fy float32) (px, py float32) {
	sx, sy := c.View.FieldToScreen(fx, fy)
	return sx * c.ViewportW, sy * c.ViewportH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the view by the given delta in screen pixels.
// Dragging right moves the field right, so the pan offset decreases.
func (c *Camera) Pan(dx, dy float32) {
	c.SetPan(
		c.PanX-dx/(c.ViewportW*c.Zoom),
		c.PanY-dy/(c.ViewportH*c.Zoom),
	)
}

// SetPan sets the pan offset, clamped to the pan limit.
func (c *Camera) SetPan(x, y float32) {
	c.PanX = ClampPan(x)
	c.PanY = ClampPan(y)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(ClampZoom(zoom), MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the field point under the given
// pixel fixed on screen, as far as the pan limit allows.
func (c *Camera) ZoomAt(px, py, factor float32) {
	fx, fy := c.ScreenToField(px, py)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToField(px, py)
	c.SetPan(c.PanX+fx-nx, c.PanY+fy-ny)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.View = DefaultView()
}

// VisibleFieldBounds returns the normalized field-space bounds of the
// visible area. Values outside [0, 1] mean the view extends past an edge.
func (c *Camera) VisibleFieldBounds() (minX, minY, maxX, maxY float32) {
	minX, minY = c.View.ScreenToField(0, 0)
	maxX, maxY = c.View.ScreenToField(1, 1)
	return
}

// Wrap folds a normalized coordinate back into [0, 1).
func Wrap(x float32) float32 {
	return mod(x, 1)
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	if r >= m {
		r = 0
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
