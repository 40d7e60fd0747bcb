package noise

import (
	"math"
	"math/rand/v2"
)

// Source is anything that yields coherent 2D noise in roughly [-1, 1].
type Source interface {
	Noise2(x, y float64) float64
}

// Field is a 2D gradient noise built from a Permutation. It is immutable
// after construction and safe to share between readers.
type Field struct {
	perm Permutation
}

// New builds a Field whose table is shuffled with r.
func New(r *rand.Rand) *Field {
	return &Field{perm: NewPermutation(r)}
}

// NewSeeded builds a Field from a PCG source seeded with seed.
func NewSeeded(seed int64) *Field {
	return New(rand.New(rand.NewPCG(uint64(seed), 0)))
}

// FromPermutation wraps an existing table.
func FromPermutation(p Permutation) *Field {
	return &Field{perm: p}
}

// Permutation exposes a copy of the backing table.
func (f *Field) Permutation() Permutation { return f.perm }

// Noise2 evaluates gradient noise at (x, y).
func (f *Field) Noise2(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	xi := int(fx) & (TableSize - 1)
	yi := int(fy) & (TableSize - 1)
	xf := x - fx
	yf := y - fy

	u := fade(xf)
	v := fade(yf)

	p := &f.perm
	aa := p[p[xi]+yi]
	ab := p[p[xi]+yi+1]
	ba := p[p[xi+1]+yi]
	bb := p[p[xi+1]+yi+1]

	x1 := lerp(grad(aa, xf, yf), grad(ba, xf-1, yf), u)
	x2 := lerp(grad(ab, xf, yf-1), grad(bb, xf-1, yf-1), u)
	return lerp(x1, x2, v)
}

// FBM sums octaves of this field; see the package-level FBM.
func (f *Field) FBM(x, y float64, octaves int) float64 {
	return FBM(f, x, y, octaves)
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// grad picks one of four diagonal directions from the low two bits.
func grad(hash int, x, y float64) float64 {
	switch hash & 3 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	default:
		return -x - y
	}
}
