package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/turing/field"
)

func TestPaintDabChangesExactlyOneCell(t *testing.T) {
	src := randomField(t, 16, 12, 11)
	dst, _ := field.New(16, 12)

	Paint(src, dst, PaintRequest{X: 5, Y: 7, Mode: Dab, Radius: 3})

	target := dst.Index(5, 7)
	for i := range dst.Cells {
		switch i {
		case target + 1:
			if dst.Cells[i] != 1 {
				t.Errorf("target V = %g, want 1", dst.Cells[i])
			}
		default:
			if dst.Cells[i] != src.Cells[i] {
				t.Errorf("cell slot %d changed: %g -> %g", i, src.Cells[i], dst.Cells[i])
			}
		}
	}
}

func TestPaintBrushRadius(t *testing.T) {
	src, _ := field.New(9, 9)
	Clear(src)
	dst, _ := field.New(9, 9)

	Paint(src, dst, PaintRequest{X: 4, Y: 4, Mode: Brush, Radius: 1})

	painted := 0
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			u, v := dst.At(x, y)
			if u != 1 {
				t.Errorf("U changed at (%d,%d): %g", x, y, u)
			}
			if v == 1 {
				painted++
				dx, dy := x-4, y-4
				if dx*dx+dy*dy > 1 {
					t.Errorf("painted outside radius at (%d,%d)", x, y)
				}
			}
		}
	}
	if painted != 5 {
		t.Errorf("expected 5 painted cells for radius 1, got %d", painted)
	}
}

func TestPaintClipsAtEdges(t *testing.T) {
	src, _ := field.New(4, 4)
	dst, _ := field.New(4, 4)

	Paint(src, dst, PaintRequest{X: 0, Y: 0, Mode: Brush, Radius: 2})
	if _, v := dst.At(0, 0); v != 1 {
		t.Errorf("corner not painted")
	}

	Paint(src, dst, PaintRequest{X: -3, Y: 9, Mode: Dab})
	for i, c := range dst.Cells {
		if c != 0 {
			t.Fatalf("out-of-range dab changed slot %d", i)
		}
	}
}

func TestSeedCenter(t *testing.T) {
	f, _ := field.New(64, 64)
	SeedCenter(f, 20)

	if u, v := f.At(32, 32); u != 1 || v != 1 {
		t.Errorf("centre = (%g,%g), want (1,1)", u, v)
	}
	if u, v := f.At(0, 0); u != 1 || v != 0 {
		t.Errorf("corner = (%g,%g), want (1,0)", u, v)
	}
	// dist^2 == 400 is outside the strict disc.
	if _, v := f.At(52, 32); v != 0 {
		t.Errorf("expected cell at distance 20 to be unseeded")
	}
}

func TestRandomBlobsDeterministic(t *testing.T) {
	a, _ := field.New(50, 40)
	b, _ := field.New(50, 40)

	RandomBlobs(a, rand.New(rand.NewSource(5)), DefaultBlobParams())
	RandomBlobs(b, rand.New(rand.NewSource(5)), DefaultBlobParams())

	seeded := 0
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("same seed produced different fields at slot %d", i)
		}
		if i%2 == 0 && a.Cells[i] != 1 {
			t.Fatalf("U not reset at slot %d", i)
		}
		if i%2 == 1 && a.Cells[i] == 1 {
			seeded++
		}
	}
	if seeded == 0 {
		t.Error("expected some seeded cells")
	}
}

func TestLookupPreset(t *testing.T) {
	p, ok := LookupPreset(" Coral ")
	if !ok || p.Feed != 0.0545 || p.Kill != 0.062 {
		t.Errorf("coral lookup = %+v, %v", p, ok)
	}
	if _, ok := LookupPreset("lava"); ok {
		t.Error("unexpected preset match")
	}
	if len(Presets()) != 8 {
		t.Errorf("expected 8 presets, got %d", len(Presets()))
	}
}

func TestPoolCoversRange(t *testing.T) {
	pool := NewPool(3)
	defer pool.Close()

	hits := make([]int, 100)
	pool.Run(len(hits), func(start, end int) {
		for i := start; i < end; i++ {
			hits[i]++
		}
	})
	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}

	var nilPool *Pool
	calls := 0
	nilPool.Run(5, func(start, end int) { calls += end - start })
	if calls != 5 {
		t.Errorf("nil pool ran %d indices, want 5", calls)
	}
}

func TestPaintBrushWrapsAcrossSeam(t *testing.T) {
	src, _ := field.New(8, 8)
	Clear(src)
	dst, _ := field.New(8, 8)

	Paint(src, dst, PaintRequest{X: 0, Y: 4, Mode: Brush, Radius: 1, Boundary: field.Wrap})
	for _, c := range [][2]int{{0, 4}, {1, 4}, {7, 4}, {0, 3}, {0, 5}} {
		if _, v := dst.At(c[0], c[1]); v != 1 {
			t.Errorf("wrap: expected V=1 at %v, got %g", c, v)
		}
	}
	if _, v := dst.At(6, 4); v != 0 {
		t.Errorf("wrap: cell (6,4) is outside the radius, got V=%g", v)
	}

	for _, b := range []field.Boundary{field.Clamp, field.Reflect} {
		Paint(src, dst, PaintRequest{X: 0, Y: 4, Mode: Brush, Radius: 1, Boundary: b})
		if _, v := dst.At(1, 4); v != 1 {
			t.Errorf("%v: expected V=1 at (1,4)", b)
		}
		if _, v := dst.At(7, 4); v != 0 {
			t.Errorf("%v: brush leaked across the edge to (7,4)", b)
		}
	}
}

func TestPaintBrushWrapsCorner(t *testing.T) {
	src, _ := field.New(6, 6)
	Clear(src)
	dst, _ := field.New(6, 6)

	Paint(src, dst, PaintRequest{X: 5, Y: 5, Mode: Brush, Radius: 1, Boundary: field.Wrap})
	painted := 0
	for i := 1; i < len(dst.Cells); i += 2 {
		if dst.Cells[i] == 1 {
			painted++
		}
	}
	if painted != 5 {
		t.Errorf("expected 5 painted cells, got %d", painted)
	}
	if _, v := dst.At(0, 5); v != 1 {
		t.Error("expected x seam wrap to (0,5)")
	}
	if _, v := dst.At(5, 0); v != 1 {
		t.Error("expected y seam wrap to (5,0)")
	}
}
