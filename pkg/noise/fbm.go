package noise

const (
	// DefaultOctaves is used when callers pass a non-positive octave count.
	DefaultOctaves = 5
	// Lacunarity is the per-octave frequency multiplier.
	Lacunarity = 2.1
	// Gain is the per-octave amplitude multiplier.
	Gain = 0.5

	firstAmplitude = 0.5
)

// FBM sums octaves of src at geometrically increasing frequency and
// decreasing amplitude, normalised by the total amplitude so the result keeps
// the range of a single octave.
func FBM(src Source, x, y float64, octaves int) float64 {
	if octaves <= 0 {
		octaves = DefaultOctaves
	}
	amp := firstAmplitude
	freq := 1.0
	var sum, norm float64
	for i := 0; i < octaves; i++ {
		sum += amp * src.Noise2(x*freq, y*freq)
		norm += amp
		amp *= Gain
		freq *= Lacunarity
	}
	return sum / norm
}
