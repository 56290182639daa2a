package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/turing/field"
)

func randomField(t *testing.T, w, h int, seed int64) *field.Field {
	t.Helper()
	f, err := field.New(w, h)
	if err != nil {
		t.Fatalf("field.New: %v", err)
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range f.Cells {
		f.Cells[i] = rng.Float32()
	}
	return f
}

func TestStepClampInvariant(t *testing.T) {
	src := randomField(t, 24, 20, 1)
	dst, _ := field.New(24, 20)
	st := NewStepper(nil)

	extreme := []Params{
		DefaultParams(),
		{Feed: 0.1, Kill: 0.07, DiffuseU: 50, DiffuseV: 50, DT: 10, Noise: 5},
		{Feed: -1, Kill: 3, DiffuseU: -4, DiffuseV: 9, DT: 2.5},
		{Feed: float32(math.NaN()), Kill: 0.06, DiffuseU: 1, DiffuseV: 0.5, DT: 1},
		{Feed: float32(math.Inf(1)), Kill: 0.06, DiffuseU: 1, DiffuseV: 0.5, DT: 1},
	}

	for i, base := range extreme {
		for _, s := range Stencils() {
			for _, b := range []field.Boundary{field.Wrap, field.Clamp, field.Reflect} {
				for _, mapMode := range []bool{false, true} {
					p := base
					p.Stencil, p.Boundary, p.MapMode = s, b, mapMode
					p.Map = DefaultParamMap()
					st.Step(src, dst, &p)
					for j, c := range dst.Cells {
						if !(c >= 0 && c <= 1) {
							t.Fatalf("params %d %s/%s map=%v: cell %d = %g outside [0,1]", i, s, b, mapMode, j, c)
						}
					}
				}
			}
		}
	}
}

func TestStepRestingStateIsFixedPoint(t *testing.T) {
	src, _ := field.New(16, 16)
	Clear(src)
	dst, _ := field.New(16, 16)

	p := DefaultParams()
	NewStepper(nil).Step(src, dst, &p)

	for i := 0; i < len(dst.Cells); i += 2 {
		if dst.Cells[i] != 1 || dst.Cells[i+1] != 0 {
			t.Fatalf("cell %d moved from rest: (%g,%g)", i/2, dst.Cells[i], dst.Cells[i+1])
		}
	}
}

func TestStepDoesNotTouchSource(t *testing.T) {
	src := randomField(t, 12, 12, 7)
	before := append([]float32(nil), src.Cells...)
	dst, _ := field.New(12, 12)

	p := DefaultParams()
	NewStepper(nil).Step(src, dst, &p)

	for i := range before {
		if src.Cells[i] != before[i] {
			t.Fatalf("source cell %d changed", i)
		}
	}
}

func TestStepCellMatchesEquations(t *testing.T) {
	p := Params{DiffuseU: 1, DiffuseV: 0.5, DT: 0.5}
	u, v := float32(0.8), float32(0.25)
	lu, lv := float32(0.1), float32(-0.05)
	feed, kill := float32(0.04), float32(0.06)

	r := u * v * v
	wantU := u + (p.DiffuseU*lu-r+feed*(1-u))*p.DT
	wantV := v + (p.DiffuseV*lv+r-(feed+kill)*v)*p.DT

	gotU, gotV := StepCell(u, v, lu, lv, feed, kill, 0.3, &p)
	if math.Abs(float64(gotU-wantU)) > 1e-6 || math.Abs(float64(gotV-wantV)) > 1e-6 {
		t.Errorf("got (%g,%g), want (%g,%g)", gotU, gotV, wantU, wantV)
	}
}

func TestStepCellNoiseSplit(t *testing.T) {
	p := Params{Noise: 0.1}
	u, v := StepCell(0.5, 0.5, 0, 0, 0, 0, 0.2, &p)
	if math.Abs(float64(u-0.52)) > 1e-6 {
		t.Errorf("expected u 0.52, got %g", u)
	}
	if math.Abs(float64(v-0.51)) > 1e-6 {
		t.Errorf("expected v 0.51, got %g", v)
	}
}

func TestCellNoiseDeterministic(t *testing.T) {
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			a := cellNoise(x, y)
			if a < -0.5 || a >= 0.5 {
				t.Fatalf("noise at (%d,%d) = %g outside [-0.5,0.5)", x, y, a)
			}
			if b := cellNoise(x, y); a != b {
				t.Fatalf("noise at (%d,%d) not reproducible: %g vs %g", x, y, a, b)
			}
		}
	}
}

func TestMapModeRanges(t *testing.T) {
	const w, h = 100, 80
	m := DefaultParamMap()
	st := NewStepper(nil)

	feed, kill := st.MapParams(0, 0, w, h, m)
	if math.Abs(float64(kill-0.045)) > 1e-7 {
		t.Errorf("kill at x=0: got %g, want 0.045", kill)
	}
	if math.Abs(float64(feed-0.010)) > 1e-7 {
		t.Errorf("feed at y=0: got %g, want 0.010", feed)
	}

	feed, kill = st.MapParams(w-1, h-1, w, h, m)
	if kill >= 0.070 || 0.070-kill > 0.025/w+1e-6 {
		t.Errorf("kill at x=W-1: got %g, want just below 0.070", kill)
	}
	if feed >= 0.100 || 0.100-feed > 0.090/h+1e-6 {
		t.Errorf("feed at y=H-1: got %g, want just below 0.100", feed)
	}

	// Monotonic along each axis.
	prev := float32(-1)
	for x := 0; x < w; x++ {
		_, k := st.MapParams(x, 0, w, h, m)
		if k <= prev {
			t.Fatalf("kill not increasing at x=%d", x)
		}
		prev = k
	}
}

func TestMapModeSingleColumn(t *testing.T) {
	st := NewStepper(nil)
	_, kill := st.MapParams(0, 0, 1, 4, DefaultParamMap())
	if math.Abs(float64(kill-0.045)) > 1e-7 {
		t.Errorf("expected lower bound for 1-wide grid, got %g", kill)
	}
}

func TestParallelStepMatchesSerial(t *testing.T) {
	src := randomField(t, 40, 96, 3)
	serial, _ := field.New(40, 96)
	parallel, _ := field.New(40, 96)

	pool := NewPool(4)
	defer pool.Close()

	p := DefaultParams()
	p.Noise = 0.05
	p.MapMode = true
	NewStepper(nil).Step(src, serial, &p)
	NewStepper(pool).Step(src, parallel, &p)

	for i := range serial.Cells {
		if serial.Cells[i] != parallel.Cells[i] {
			t.Fatalf("cell %d differs: %g vs %g", i, serial.Cells[i], parallel.Cells[i])
		}
	}
}
