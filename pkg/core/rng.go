package core

import (
	"math"
	"math/rand/v2"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Range returns a uniform value in [min, max). Reversed bounds are swapped.
func (r *RNG) Range(min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	return min + r.r.Float64()*(max-min)
}

// IntRange returns a uniform integer in [min, max] inclusive.
func (r *RNG) IntRange(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + r.r.IntN(max-min+1)
}

// Signed returns a uniform value in [-1, 1).
func (r *RNG) Signed() float64 {
	return r.r.Float64()*2 - 1
}

// Angle returns a uniform angle in [0, 2π).
func (r *RNG) Angle() float64 {
	return r.r.Float64() * 2 * math.Pi
}

// IntN returns a uniform integer in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
