package renderer

import "math"

// Lighting configures the relief post-process.
type Lighting struct {
	Ambient   float32
	KeyWeight float32
	RimWeight float32

	// Phong exponent and multiplier for the specular highlight.
	SpecExponent float32
	SpecScale    float32

	// Strength scales the concentration gradient into the surface normal.
	Strength float32

	// BorderMargin is the cell margin along non-wrapping edges where relief
	// is skipped.
	BorderMargin int
}

// DefaultLighting returns the key/rim setup used by the viewer.
func DefaultLighting() Lighting {
	return Lighting{
		Ambient:      0.35,
		KeyWeight:    0.75,
		RimWeight:    0.25,
		SpecExponent: 64,
		SpecScale:    1.5,
		Strength:     10,
		BorderMargin: 2,
	}
}

type vec3 struct{ x, y, z float32 }

func (v vec3) dot(o vec3) float32 { return v.x*o.x + v.y*o.y + v.z*o.z }

func (v vec3) normalize() vec3 {
	l := float32(math.Sqrt(float64(v.dot(v))))
	if l == 0 {
		return vec3{0, 0, 1}
	}
	return vec3{v.x / l, v.y / l, v.z / l}
}

var (
	keyLight = vec3{-0.6, -0.6, 1}.normalize()
	rimLight = vec3{0.7, 0.3, 0.5}.normalize()
	viewDir  = vec3{0, 0, 1}
)

// Shade returns the lighting multiplier for a surface whose concentration
// changes by (dx, dy) per cell.
func (l Lighting) Shade(dx, dy float32) float32 {
	n := vec3{-l.Strength * dx, -l.Strength * dy, 1}.normalize()

	kd := max(n.dot(keyLight), 0)
	rd := max(n.dot(rimLight), 0)
	diffuse := l.KeyWeight*kd + l.RimWeight*rd

	// Reflect the key light about the normal.
	r := vec3{
		2*kd*n.x - keyLight.x,
		2*kd*n.y - keyLight.y,
		2*kd*n.z - keyLight.z,
	}
	spec := float32(math.Pow(float64(max(r.dot(viewDir), 0)), float64(l.SpecExponent)))

	return l.Ambient + diffuse + spec*l.SpecScale
}
