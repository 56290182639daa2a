package systems

import "github.com/pthm-cable/turing/field"

// BrushMode selects how a paint request touches the field.
type BrushMode uint8

const (
	// Brush sets V to 1 on every cell within the radius.
	Brush BrushMode = iota
	// Dab sets V to 1 on the target cell only.
	Dab
)

func (m BrushMode) String() string {
	switch m {
	case Brush:
		return "brush"
	case Dab:
		return "dab"
	default:
		return "unknown"
	}
}

// PaintRequest is a single brush application in grid-cell units.
type PaintRequest struct {
	X, Y   int
	Mode   BrushMode
	Radius int

	// Boundary decides what happens to the disc past an edge: Wrap folds
	// it onto the opposite side, any other mode clips it.
	Boundary field.Boundary
}

// Paint copies src into dst with the request applied. U is never modified.
// A dab outside the grid is ignored.
func Paint(src, dst *field.Field, req PaintRequest) {
	dst.CopyFrom(src)

	if req.Mode == Dab {
		if req.X < 0 || req.Y < 0 || req.X >= dst.W || req.Y >= dst.H {
			return
		}
		dst.Cells[dst.Index(req.X, req.Y)+1] = 1
		return
	}

	wrap := req.Boundary == field.Wrap
	r := max(req.Radius, 0)
	r2 := r * r
	for dy := -r; dy <= r; dy++ {
		y := req.Y + dy
		if wrap {
			y = field.Resolve(y, dst.H, field.Wrap)
		} else if y < 0 || y >= dst.H {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			x := req.X + dx
			if wrap {
				x = field.Resolve(x, dst.W, field.Wrap)
			} else if x < 0 || x >= dst.W {
				continue
			}
			dst.Cells[dst.Index(x, y)+1] = 1
		}
	}
}
