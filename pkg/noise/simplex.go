package noise

import "github.com/ojrac/opensimplex-go"

// Simplex adapts OpenSimplex noise to Source.
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex returns an OpenSimplex source seeded with seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.New(seed)}
}

// Noise2 evaluates OpenSimplex noise at (x, y).
func (s *Simplex) Noise2(x, y float64) float64 {
	return s.n.Eval2(x, y)
}

// Kind names a noise basis.
type Kind string

const (
	KindGradient Kind = "gradient"
	KindSimplex  Kind = "simplex"
)

// NewSource builds the basis named by kind. Unknown kinds fall back to the
// permutation-table gradient field.
func NewSource(kind Kind, seed int64) Source {
	if kind == KindSimplex {
		return NewSimplex(seed)
	}
	return NewSeeded(seed)
}
