package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, 16)

	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	if cam.PanX != 0 || cam.PanY != 0 {
		t.Errorf("expected zero pan, got (%f, %f)", cam.PanX, cam.PanY)
	}
}

func TestScreenToFieldCentered(t *testing.T) {
	cam := New(1280, 720, 16)

	// Screen centre maps to field centre at any zoom with no pan
	for _, z := range []float32{1, 2, 7.5} {
		cam.SetZoom(z)
		fx, fy := cam.ScreenToField(640, 360)
		if !near(fx, 0.5) || !near(fy, 0.5) {
			t.Errorf("zoom %f: expected (0.5, 0.5), got (%f, %f)", z, fx, fy)
		}
	}
}

func TestScreenToFieldZoomed(t *testing.T) {
	v := View{Zoom: 2}

	// At 2x the screen corners show the middle half of the field
	fx, fy := v.ScreenToField(0, 0)
	if !near(fx, 0.25) || !near(fy, 0.25) {
		t.Errorf("expected (0.25, 0.25), got (%f, %f)", fx, fy)
	}
	fx, fy = v.ScreenToField(1, 1)
	if !near(fx, 0.75) || !near(fy, 0.75) {
		t.Errorf("expected (0.75, 0.75), got (%f, %f)", fx, fy)
	}
}

func TestScreenToFieldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 16)
	cam.SetZoom(3)
	cam.SetPan(0.2, -0.4)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		fx, fy := cam.ScreenToField(tc.sx, tc.sy)
		sx, sy := cam.FieldToScreen(fx, fy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, fx, fy, sx, sy)
		}
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 8)

	cam.SetZoom(0.1)
	if cam.Zoom != MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", MinZoom, cam.Zoom)
	}

	cam.SetZoom(100)
	if cam.Zoom != 8 {
		t.Errorf("expected zoom clamped to 8, got %f", cam.Zoom)
	}

	cam.SetZoom(float32(math.NaN()))
	if cam.Zoom != MinZoom {
		t.Errorf("expected NaN zoom to reset to %f, got %f", MinZoom, cam.Zoom)
	}
}

func TestPanClamp(t *testing.T) {
	cam := New(1000, 1000, 8)

	cam.SetPan(3, -2)
	if cam.PanX != PanLimit || cam.PanY != -PanLimit {
		t.Errorf("expected pan clamped to (%f, %f), got (%f, %f)", PanLimit, -PanLimit, cam.PanX, cam.PanY)
	}

	cam.Reset()
	cam.Pan(-100, 0)
	if !near(cam.PanX, 0.1) {
		t.Errorf("expected pan 0.1 after dragging 100px left, got %f", cam.PanX)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(800, 800, 16)
	before, _ := cam.ScreenToField(600, 400)
	cam.ZoomAt(600, 400, 2)
	after, _ := cam.ScreenToField(600, 400)
	if !near(before, after) {
		t.Errorf("expected field point %f to stay under cursor, got %f", before, after)
	}
}

func TestVisibleFieldBounds(t *testing.T) {
	cam := New(1280, 720, 16)
	minX, minY, maxX, maxY := cam.VisibleFieldBounds()
	if !near(minX, 0) || !near(minY, 0) || !near(maxX, 1) || !near(maxY, 1) {
		t.Errorf("expected unit bounds, got (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}

	cam.SetPan(0.5, 0)
	minX, _, maxX, _ = cam.VisibleFieldBounds()
	if !near(minX, 0.5) || !near(maxX, 1.5) {
		t.Errorf("expected panned bounds 0.5-1.5, got %f-%f", minX, maxX)
	}
}

func TestWrap(t *testing.T) {
	cases := []struct{ in, want float32 }{
		{0.25, 0.25},
		{1.25, 0.25},
		{-0.25, 0.75},
		{1, 0},
	}
	for _, tc := range cases {
		if got := Wrap(tc.in); !near(got, tc.want) {
			t.Errorf("Wrap(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}
