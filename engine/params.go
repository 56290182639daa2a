package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/pthm-cable/turing/camera"
	"github.com/pthm-cable/turing/field"
	"github.com/pthm-cable/turing/renderer"
	"github.com/pthm-cable/turing/systems"
)

var (
	// ErrUnknownParameter is returned by SetParameter for unrecognised names.
	ErrUnknownParameter = errors.New("engine: unknown parameter")
	// ErrInvalidValue is returned when a value is out of range for its parameter.
	ErrInvalidValue = errors.New("engine: invalid parameter value")
)

// Parameter names accepted by SetParameter.
const (
	ParamFeed          = "feed_rate"
	ParamKill          = "kill_rate"
	ParamDiffuseU      = "diffuse_u"
	ParamDiffuseV      = "diffuse_v"
	ParamDeltaTime     = "delta_time"
	ParamStepsPerFrame = "steps_per_frame"
	ParamNoise         = "noise_strength"
	ParamStencil       = "stencil"
	ParamBoundary      = "boundary"
	ParamPalette       = "palette"
	ParamRelief        = "relief"
	ParamZoom          = "zoom"
	ParamPanX          = "pan_x"
	ParamPanY          = "pan_y"
	ParamMapMode       = "map_mode"
)

type setter func(e *Engine, v float64) error

var setters = map[string]setter{
	ParamFeed: func(e *Engine, v float64) error {
		if err := checkRate(ParamFeed, v); err != nil {
			return err
		}
		e.sim.Feed = float32(v)
		return nil
	},
	ParamKill: func(e *Engine, v float64) error {
		if err := checkRate(ParamKill, v); err != nil {
			return err
		}
		e.sim.Kill = float32(v)
		return nil
	},
	ParamDiffuseU: func(e *Engine, v float64) error {
		if err := checkRate(ParamDiffuseU, v); err != nil {
			return err
		}
		e.sim.DiffuseU = float32(v)
		return nil
	},
	ParamDiffuseV: func(e *Engine, v float64) error {
		if err := checkRate(ParamDiffuseV, v); err != nil {
			return err
		}
		e.sim.DiffuseV = float32(v)
		return nil
	},
	ParamDeltaTime: func(e *Engine, v float64) error {
		if err := systems.CheckDeltaTime(ParamDeltaTime, v); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		e.sim.DT = float32(v)
		return nil
	},
	ParamStepsPerFrame: func(e *Engine, v float64) error {
		n, err := checkIndex(ParamStepsPerFrame, v)
		if err != nil {
			return err
		}
		if err := systems.CheckStepsPerFrame(ParamStepsPerFrame, n); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		e.sim.StepsPerFrame = n
		return nil
	},
	ParamNoise: func(e *Engine, v float64) error {
		if err := checkRate(ParamNoise, v); err != nil {
			return err
		}
		e.sim.Noise = float32(v)
		return nil
	},
	ParamStencil: func(e *Engine, v float64) error {
		n, err := checkIndex(ParamStencil, v)
		if err != nil {
			return err
		}
		s, err := systems.StencilFromIndex(n)
		if err != nil {
			return err
		}
		e.sim.Stencil = s
		return nil
	},
	ParamBoundary: func(e *Engine, v float64) error {
		n, err := checkIndex(ParamBoundary, v)
		if err != nil {
			return err
		}
		b, err := field.BoundaryFromIndex(n)
		if err != nil {
			return err
		}
		// Physics and display share one boundary mode.
		e.sim.Boundary = b
		e.render.Boundary = b
		return nil
	},
	ParamPalette: func(e *Engine, v float64) error {
		n, err := checkIndex(ParamPalette, v)
		if err != nil {
			return err
		}
		if err := renderer.ValidatePalette(n); err != nil {
			return err
		}
		e.render.Palette = n
		return nil
	},
	ParamRelief: func(e *Engine, v float64) error {
		if err := checkFinite(ParamRelief, v); err != nil {
			return err
		}
		e.render.Relief = v != 0
		return nil
	},
	ParamZoom: func(e *Engine, v float64) error {
		if err := checkFinite(ParamZoom, v); err != nil {
			return err
		}
		e.render.View.Zoom = camera.ClampZoom(float32(v))
		return nil
	},
	ParamPanX: func(e *Engine, v float64) error {
		if err := checkFinite(ParamPanX, v); err != nil {
			return err
		}
		e.render.View.PanX = camera.ClampPan(float32(v))
		return nil
	},
	ParamPanY: func(e *Engine, v float64) error {
		if err := checkFinite(ParamPanY, v); err != nil {
			return err
		}
		e.render.View.PanY = camera.ClampPan(float32(v))
		return nil
	},
	ParamMapMode: func(e *Engine, v float64) error {
		if err := checkFinite(ParamMapMode, v); err != nil {
			return err
		}
		e.sim.MapMode = v != 0
		return nil
	},
}

// Parameters lists the names SetParameter accepts, sorted.
func Parameters() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetParameter updates one named parameter. Index parameters (stencil,
// boundary, palette, steps_per_frame) take integral values; flags (relief,
// map_mode) treat any non-zero value as true. Zoom and pan are clamped
// rather than rejected. On error nothing changes.
func (e *Engine) SetParameter(name string, value float64) error {
	set, ok := setters[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return set(e, value)
}

func checkFinite(name string, v float64) error {
	if err := systems.CheckFinite(name, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return nil
}

func checkRate(name string, v float64) error {
	if err := systems.CheckRate(name, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return nil
}

func checkIndex(name string, v float64) (int, error) {
	if err := checkFinite(name, v); err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %s must be integral, got %g", ErrInvalidValue, name, v)
	}
	return int(v), nil
}
