package molten

import "math"

// ShimmerBand is a wide, soft band of heat haze travelling up the screen on
// an endless conveyor.
type ShimmerBand struct {
	X, Y       float64
	W, H       float64
	Speed      float64
	Drift      float64
	Phase      float64
	PhaseSpeed float64
	Alpha      float64
	Life       int
}

func (a *Animator) spawnShimmer(s *ShimmerBand) {
	p := &a.cfg.Params
	*s = ShimmerBand{
		X:          a.rng.Range(0, float64(a.w)),
		Y:          a.rng.Range(0, float64(a.h)),
		W:          p.ShimmerWidth * a.rng.Range(0.7, 1.3),
		H:          p.ShimmerHeight * a.rng.Range(0.7, 1.3),
		Speed:      p.ShimmerSpeed * a.rng.Range(0.6, 1.4),
		Drift:      p.ShimmerDrift * a.rng.Signed(),
		Phase:      a.rng.Angle(),
		PhaseSpeed: a.rng.Range(0.01, 0.04),
		Alpha:      p.ShimmerAlpha * a.rng.Range(0.6, 1),
	}
}

func (a *Animator) updateShimmer(s *ShimmerBand) {
	s.Life++
	s.Phase += s.PhaseSpeed
	s.Y -= s.Speed
	s.X += s.Drift
	if s.Y+s.H/2 < 0 {
		s.Y = float64(a.h) + s.H/2 + a.rng.Range(0, s.H)
		s.X = a.rng.Range(0, float64(a.w))
	}
	s.X = wrapPadded(s.X, s.W/2, float64(a.w))
}

// Offset is the band's current horizontal wobble.
func (s *ShimmerBand) Offset(wobble float64) float64 {
	return math.Sin(s.Phase) * wobble
}

// Shimmers exposes the shimmer band set.
func (a *Animator) Shimmers() []ShimmerBand { return a.shimmers }
