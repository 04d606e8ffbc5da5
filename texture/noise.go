package texture

import "math"

// Noise is seeded 2D value noise. The same seed always yields the same field.
type Noise struct {
	seed uint32
}

func NewNoise(seed int64) Noise {
	return Noise{seed: uint32(seed) ^ uint32(seed>>32)}
}

// hash maps a lattice point to [0, 1)
func (n Noise) hash(x, y int) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + n.seed*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h&0xffffff) / float64(0x1000000)
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

// Value returns noise in [-1, 1] at (x, y) sampled at the given scale
func (n Noise) Value(x, y, scale float64) float64 {
	x, y = x*scale, y*scale
	x0, y0 := math.Floor(x), math.Floor(y)
	ix, iy := int(x0), int(y0)
	tx, ty := smooth(x-x0), smooth(y-y0)

	a := n.hash(ix, iy)
	b := n.hash(ix+1, iy)
	c := n.hash(ix, iy+1)
	d := n.hash(ix+1, iy+1)

	top := a + (b-a)*tx
	bottom := c + (d-c)*tx
	return (top+(bottom-top)*ty)*2 - 1
}

// FBM sums octaves of Value, halving amplitude by persistence and doubling
// frequency each step. The result is normalised back into [-1, 1].
func (n Noise) FBM(x, y float64, octaves int, persistence, scale float64) float64 {
	total, amplitude, frequency, norm := 0.0, 1.0, scale, 0.0
	for i := 0; i < octaves; i++ {
		total += n.Value(x, y, frequency) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	if norm == 0 {
		return 0
	}
	return total / norm
}
