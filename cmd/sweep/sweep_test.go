package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/turing/config"
	"github.com/pthm-cable/turing/telemetry"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector(config.Default())
	raw := []float64{0.03, 0.06, 0.5}
	got := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(got[i]-raw[i]) > 1e-12 {
			t.Errorf("param %d: got %v, want %v", i, got[i], raw[i])
		}
	}
}

func TestParamVectorClampAndApply(t *testing.T) {
	cfg := config.Default()
	pv := NewParamVector(cfg)

	pv.ApplyToConfig(cfg, []float64{-1, 1, 0.5})
	if cfg.Simulation.FeedRate != pv.Specs[idxFeed].Min {
		t.Errorf("feed = %v, want clamped to %v", cfg.Simulation.FeedRate, pv.Specs[idxFeed].Min)
	}
	if cfg.Simulation.KillRate != pv.Specs[idxKill].Max {
		t.Errorf("kill = %v, want clamped to %v", cfg.Simulation.KillRate, pv.Specs[idxKill].Max)
	}

	got := pv.ExtractFromConfig(cfg)
	if got[idxDiffuseV] != 0.5 {
		t.Errorf("diffuse_v = %v, want 0.5", got[idxDiffuseV])
	}
}

func TestQuality(t *testing.T) {
	flat := telemetry.WindowStats{FieldStats: telemetry.FieldStats{MinV: 0.2, MaxV: 0.2, StdV: 0}}
	if q := Quality(flat, 0.3); q != 0 {
		t.Errorf("uniform field quality = %v, want 0", q)
	}

	onTarget := telemetry.WindowStats{FieldStats: telemetry.FieldStats{MinV: 0, MaxV: 0.5, StdV: 0.2, Coverage: 0.3}}
	offTarget := onTarget
	offTarget.Coverage = 0.9
	if Quality(onTarget, 0.3) <= Quality(offTarget, 0.3) {
		t.Error("coverage near target should score higher")
	}
}

func TestGridPoints(t *testing.T) {
	pts := gridPoints(0.01, 0.1, 4)
	if len(pts) != 4 || pts[0] != 0.01 || pts[3] != 0.1 {
		t.Errorf("gridPoints = %v", pts)
	}
	if one := gridPoints(0, 1, 1); len(one) != 1 || one[0] != 0.5 {
		t.Errorf("single point = %v", one)
	}
}

func TestEvaluateTracksBest(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Width = 32
	cfg.Grid.Height = 32
	cfg.Seed.BlobCount = 3
	cfg.Seed.BlobRadiusMin = 2
	cfg.Seed.BlobRadiusMax = 4
	cfg.Simulation.StepsPerFrame = 4
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	pv := NewParamVector(cfg)
	fe := NewEvaluator(pv, 5, []int64{1, 2}, cfg, 0.3)

	r := fe.Evaluate(pv.DefaultVector())
	if r.Eval != 1 {
		t.Errorf("Eval = %d, want 1", r.Eval)
	}
	if r.Fitness != -r.Quality {
		t.Errorf("fitness %v is not -quality %v", r.Fitness, r.Quality)
	}

	best, fitness, frame := fe.Best()
	if best == nil || frame == nil {
		t.Fatal("no best recorded")
	}
	if fitness != r.Fitness {
		t.Errorf("best fitness = %v, want %v", fitness, r.Fitness)
	}
	if b := frame.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("frame size = %v", b)
	}
}
