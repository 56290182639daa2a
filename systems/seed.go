package systems

import (
	"math/rand"

	"github.com/pthm-cable/turing/field"
)

// BlobParams controls RandomBlobs.
type BlobParams struct {
	Count     int
	RadiusMin float32
	RadiusMax float32
}

// DefaultBlobParams scatters fifteen blobs of radius 10 to 40 cells.
func DefaultBlobParams() BlobParams {
	return BlobParams{Count: 15, RadiusMin: 10, RadiusMax: 40}
}

// Clear sets the field to the resting state U=1, V=0.
func Clear(f *field.Field) {
	f.Fill(1, 0)
}

// SeedCenter clears the field and sets V=1 on a disc at the centre.
func SeedCenter(f *field.Field, radius float32) {
	Clear(f)
	cx, cy := f.W/2, f.H/2
	r2 := radius * radius
	for y := 0; y < f.H; y++ {
		dy := float32(y - cy)
		for x := 0; x < f.W; x++ {
			dx := float32(x - cx)
			if dx*dx+dy*dy < r2 {
				f.Set(x, y, 1, 1)
			}
		}
	}
}

// RandomBlobs clears the field and adds Count discs of V=1 at random
// positions. Discs are clipped to the grid.
func RandomBlobs(f *field.Field, rng *rand.Rand, p BlobParams) {
	Clear(f)
	span := p.RadiusMax - p.RadiusMin
	for i := 0; i < p.Count; i++ {
		cx := rng.Intn(f.W)
		cy := rng.Intn(f.H)
		radius := p.RadiusMin + rng.Float32()*span
		stamp(f, cx, cy, radius)
	}
}

func stamp(f *field.Field, cx, cy int, radius float32) {
	r := int(radius)
	r2 := radius * radius
	for dy := -r; dy <= r; dy++ {
		y := cy + dy
		if y < 0 || y >= f.H {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			x := cx + dx
			if x < 0 || x >= f.W {
				continue
			}
			if float32(dx*dx+dy*dy) <= r2 {
				f.Cells[f.Index(x, y)+1] = 1
			}
		}
	}
}
