package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/turing/field"
	"github.com/pthm-cable/turing/systems"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeFieldStats(t *testing.T) {
	f, _ := field.New(10, 10)
	systems.Clear(f)
	// A quarter of the cells at V=1
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			f.Set(x, y, 0.5, 1)
		}
	}

	s, sorted := ComputeFieldStats(f, 0.25, nil)

	if math.Abs(s.MeanV-0.25) > 1e-9 {
		t.Errorf("mean V = %v, want 0.25", s.MeanV)
	}
	if math.Abs(s.MeanU-0.875) > 1e-9 {
		t.Errorf("mean U = %v, want 0.875", s.MeanU)
	}
	// Population std of a 25/75 Bernoulli split
	if math.Abs(s.StdV-math.Sqrt(0.25*0.75)) > 1e-9 {
		t.Errorf("std V = %v, want %v", s.StdV, math.Sqrt(0.1875))
	}
	if s.MinV != 0 || s.MaxV != 1 {
		t.Errorf("min/max = %v/%v", s.MinV, s.MaxV)
	}
	if s.Coverage != 0.25 {
		t.Errorf("coverage = %v, want 0.25", s.Coverage)
	}
	if s.P50V != 0 || s.P90V != 1 {
		t.Errorf("p50/p90 = %v/%v", s.P50V, s.P90V)
	}
	if len(sorted) != 100 {
		t.Errorf("expected sorted V channel of 100, got %d", len(sorted))
	}
}

func TestCollectorWindows(t *testing.T) {
	f, _ := field.New(8, 8)
	systems.Clear(f)
	c := NewCollector(4, 0.25)
	p := systems.DefaultParams()

	emitted := 0
	for tick := uint64(0); tick <= 12; tick++ {
		if tick == 6 {
			f.Fill(1, 0.5)
		}
		stats, ok := c.Observe(tick, tick*8, p, f)
		if !ok {
			continue
		}
		emitted++
		if stats.WindowEndTick-stats.WindowStartTick != 4 {
			t.Errorf("window %d-%d has wrong length", stats.WindowStartTick, stats.WindowEndTick)
		}
		switch stats.WindowEndTick {
		case 4:
			if stats.Activity != 0 {
				t.Errorf("expected no activity in a static window, got %v", stats.Activity)
			}
		case 8:
			if math.Abs(stats.Activity-0.5) > 1e-9 {
				t.Errorf("expected activity 0.5, got %v", stats.Activity)
			}
		}
		if stats.Stencil != "nine_point" {
			t.Errorf("unexpected stencil %q", stats.Stencil)
		}
	}
	if emitted != 3 {
		t.Errorf("expected 3 windows, got %d", emitted)
	}
}
