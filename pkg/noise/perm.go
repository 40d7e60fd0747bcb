// Package noise provides the seeded coherent-noise field that drives the
// background animation: a 2D gradient noise over a shuffled permutation
// table, fractal (fbm) composition, and an OpenSimplex alternative basis.
package noise

import "math/rand/v2"

// TableSize is the number of distinct lattice hashes.
const TableSize = 256

// Permutation is a shuffled sequence of 0..255 stored twice so corner
// lookups like perm[perm[x]+y+1] never need to wrap.
type Permutation [2 * TableSize]int

// NewPermutation shuffles the identity sequence with a backward Fisher–Yates
// pass driven by r and duplicates the result.
func NewPermutation(r *rand.Rand) Permutation {
	var p Permutation
	for i := 0; i < TableSize; i++ {
		p[i] = i
	}
	for i := TableSize - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	for i := 0; i < TableSize; i++ {
		p[TableSize+i] = p[i]
	}
	return p
}

// Values returns a copy of the first 256 entries.
func (p *Permutation) Values() []int {
	out := make([]int, TableSize)
	copy(out, p[:TableSize])
	return out
}
