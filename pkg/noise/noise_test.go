package noise

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestPermutationIsPermutation(t *testing.T) {
	for seed := uint64(0); seed < 32; seed++ {
		p := NewPermutation(rand.New(rand.NewPCG(seed, 0)))
		seen := make([]int, TableSize)
		for i := 0; i < TableSize; i++ {
			v := p[i]
			if v < 0 || v >= TableSize {
				t.Fatalf("seed %d: value %d out of range at %d", seed, v, i)
			}
			seen[v]++
		}
		for v, n := range seen {
			if n != 1 {
				t.Fatalf("seed %d: value %d appears %d times", seed, v, n)
			}
		}
		for i := 0; i < TableSize; i++ {
			if p[TableSize+i] != p[i] {
				t.Fatalf("seed %d: doubled half differs at %d", seed, i)
			}
		}
	}
}

func TestPermutationShuffles(t *testing.T) {
	p := NewPermutation(rand.New(rand.NewPCG(7, 0)))
	fixed := 0
	for i := 0; i < TableSize; i++ {
		if p[i] == i {
			fixed++
		}
	}
	if fixed > 16 {
		t.Fatalf("expected a shuffled table, %d entries still in place", fixed)
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	c := NewSeeded(43)
	same := true
	for i := 0; i < 64; i++ {
		x := float64(i)*0.37 - 5
		y := float64(i)*0.21 + 3
		if a.Noise2(x, y) != b.Noise2(x, y) {
			t.Fatalf("same seed diverged at (%f,%f)", x, y)
		}
		if a.Noise2(x, y) != c.Noise2(x, y) {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical samples")
	}
}

func TestNoiseZeroAtLattice(t *testing.T) {
	f := NewSeeded(1)
	for x := -3; x <= 3; x++ {
		for y := -3; y <= 3; y++ {
			if v := f.Noise2(float64(x), float64(y)); v != 0 {
				t.Fatalf("noise at lattice point (%d,%d) = %f, want 0", x, y, v)
			}
		}
	}
}

func TestNoiseContinuous(t *testing.T) {
	f := NewSeeded(99)
	const eps = 1e-4
	const lipschitz = 10.0
	points := []float64{-2.00005, -1.5, -0.00005, 0.25, 0.99995, 1.00005, 3.7, 17.99995, 255.99995, 256.00005}
	for _, x := range points {
		for _, y := range []float64{-0.3, 0.5, 1.99995, 42.1} {
			d := math.Abs(f.Noise2(x+eps, y) - f.Noise2(x, y))
			if d > lipschitz*eps {
				t.Fatalf("x-step discontinuity at (%f,%f): delta %g", x, y, d)
			}
			d = math.Abs(f.Noise2(y, x+eps) - f.Noise2(y, x))
			if d > lipschitz*eps {
				t.Fatalf("y-step discontinuity at (%f,%f): delta %g", y, x, d)
			}
		}
	}
}

func TestNoiseRange(t *testing.T) {
	f := NewSeeded(5)
	r := rand.New(rand.NewPCG(11, 0))
	for i := 0; i < 20000; i++ {
		x := r.Float64()*600 - 300
		y := r.Float64()*600 - 300
		v := f.Noise2(x, y)
		if v < -1.0001 || v > 1.0001 {
			t.Fatalf("noise(%f,%f) = %f out of range", x, y, v)
		}
	}
}

func TestFBMNormalised(t *testing.T) {
	f := NewSeeded(2024)
	r := rand.New(rand.NewPCG(3, 0))
	for octaves := 1; octaves <= 8; octaves++ {
		for i := 0; i < 4000; i++ {
			x := r.Float64()*200 - 100
			y := r.Float64()*200 - 100
			v := f.FBM(x, y, octaves)
			if v < -1.05 || v > 1.05 {
				t.Fatalf("fbm octaves=%d at (%f,%f) = %f", octaves, x, y, v)
			}
		}
	}
}

func TestFBMDefaultsOctaves(t *testing.T) {
	f := NewSeeded(8)
	if got, want := f.FBM(1.3, 2.7, 0), f.FBM(1.3, 2.7, DefaultOctaves); got != want {
		t.Fatalf("octaves<=0 should use default: got %f want %f", got, want)
	}
}

func TestSingleOctaveMatchesBase(t *testing.T) {
	f := NewSeeded(8)
	if got, want := f.FBM(0.4, 9.1, 1), f.Noise2(0.4, 9.1); math.Abs(got-want) > 1e-12 {
		t.Fatalf("one octave fbm = %f, base noise = %f", got, want)
	}
}

func TestNewSourceKinds(t *testing.T) {
	if _, ok := NewSource(KindSimplex, 1).(*Simplex); !ok {
		t.Fatal("simplex kind should build a Simplex source")
	}
	if _, ok := NewSource("bogus", 1).(*Field); !ok {
		t.Fatal("unknown kind should fall back to the gradient field")
	}
	s := NewSimplex(4)
	for i := 0; i < 100; i++ {
		v := FBM(s, float64(i)*0.13, float64(i)*0.07, 4)
		if math.IsNaN(v) || v < -1.5 || v > 1.5 {
			t.Fatalf("simplex fbm produced %f", v)
		}
	}
}
