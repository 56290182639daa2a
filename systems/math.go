package systems

// Clamp functions for common value ranges

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
// NaN maps to 0 so a degenerate step can never leave the range.
func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// inBox reports whether (x, y) is at least margin cells inside a w*h grid.
func inBox(x, y, w, h, margin int) bool {
	return x >= margin && y >= margin && x < w-margin && y < h-margin
}
