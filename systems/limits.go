package systems

import (
	"fmt"
	"math"
)

// MaxStepsPerFrame keeps a single frame's integration bounded.
const MaxStepsPerFrame = 1000

// Range checks shared by config loading and runtime parameter updates.
// Callers wrap the returned errors with their own sentinel.

// CheckFinite rejects NaN and infinities.
func CheckFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be finite, got %g", name, v)
	}
	return nil
}

// CheckRate accepts finite non-negative values: feed, kill, diffusion
// and noise.
func CheckRate(name string, v float64) error {
	if err := CheckFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("%s must be >= 0, got %g", name, v)
	}
	return nil
}

// CheckDeltaTime accepts finite positive time steps.
func CheckDeltaTime(name string, v float64) error {
	if err := CheckFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("%s must be > 0, got %g", name, v)
	}
	return nil
}

// CheckStepsPerFrame accepts 0..MaxStepsPerFrame.
func CheckStepsPerFrame(name string, n int) error {
	if n < 0 || n > MaxStepsPerFrame {
		return fmt.Errorf("%s must be in [0, %d], got %d", name, MaxStepsPerFrame, n)
	}
	return nil
}

// CheckRadius accepts non-negative brush radii.
func CheckRadius(name string, r int) error {
	if r < 0 {
		return fmt.Errorf("%s must be >= 0, got %d", name, r)
	}
	return nil
}
