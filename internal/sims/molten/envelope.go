package molten

// Envelope is the triangular visibility curve shared by cracks and embers:
// it ramps in over the first 10% of life, holds at 1 and ramps out over the
// last 40%. Outside [0, maxLife] it is 0.
func Envelope(life, maxLife int) float64 {
	if maxLife <= 0 || life <= 0 || life >= maxLife {
		return 0
	}
	p := float64(life) / float64(maxLife)
	switch {
	case p < 0.1:
		return p / 0.1
	case p > 0.6:
		return (1 - p) / 0.4
	default:
		return 1
	}
}
