package systems

// hash2D returns a deterministic value in [0, 1) for an integer coordinate.
// The same coordinate always yields the same value regardless of call order.
func hash2D(ix, iy int, seed uint32) float32 {
	x := uint32(ix)
	y := uint32(iy)
	h := x*374761393 + y*668265263 + seed*1442695041
	h = (h ^ (h >> 13)) * 1274126177
	h ^= (h >> 16)
	return float32(h&0x00FFFFFF) / float32(0x01000000)
}

// cellNoise is hash2D recentred to [-0.5, 0.5).
func cellNoise(x, y int) float32 {
	return hash2D(x, y, noiseSeed) - 0.5
}

const noiseSeed = 0x9e3779b9
