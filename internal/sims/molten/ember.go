package molten

import (
	"image/color"
	"math"
)

// emberRespawnTop is how far above the viewport an ember may rise before it
// is recycled.
const emberRespawnTop = -20

// Ember is a rising spark. It accelerates upward, sways side to side with a
// decaying oscillation and shrinks as it ages.
type Ember struct {
	X, Y       float64
	VY         float64
	BaseSize   float64
	Size       float64
	Phase      float64
	PhaseSpeed float64
	Sway       float64
	Opacity    float64
	Color      color.NRGBA
	Life       int
	MaxLife    int
}

// Alpha is the ember's current opacity.
func (e *Ember) Alpha() float64 { return e.Opacity * Envelope(e.Life, e.MaxLife) }

// spawnEmber fills e anywhere on screen; used for the initial population.
func (a *Animator) spawnEmber(e *Ember) {
	a.respawnEmber(e)
	e.Y = a.rng.Range(0, float64(a.h))
}

// respawnEmber fills e at the ground, just below the bottom edge.
func (a *Animator) respawnEmber(e *Ember) {
	p := &a.cfg.Params
	size := a.rng.Range(p.EmberSizeMin, p.EmberSizeMax)
	*e = Ember{
		X:          a.rng.Range(0, float64(a.w)),
		Y:          float64(a.h) + a.rng.Range(0, 20),
		VY:         -a.rng.Range(0.2, 0.7),
		BaseSize:   size,
		Size:       size,
		Phase:      a.rng.Angle(),
		PhaseSpeed: a.rng.Range(0.03, 0.09),
		Sway:       p.EmberSway * a.rng.Range(0.5, 1),
		Opacity:    a.rng.Range(p.EmberOpacityMin, p.EmberOpacityMax),
		Color:      emberPalette[a.rng.IntN(len(emberPalette))],
		MaxLife:    a.rng.IntRange(p.EmberLifeMin, p.EmberLifeMax),
	}
}

func (a *Animator) updateEmber(e *Ember) {
	p := &a.cfg.Params
	e.Life++
	e.VY -= p.EmberLift
	e.Y += e.VY
	e.Phase += e.PhaseSpeed
	e.X += math.Sin(e.Phase) * e.Sway
	e.Sway *= p.EmberSwayDamping

	age := 0.0
	if e.MaxLife > 0 {
		age = math.Min(1, float64(e.Life)/float64(e.MaxLife))
	}
	e.Size = e.BaseSize * (1 - age)

	w := float64(a.w)
	if e.Life > e.MaxLife || e.Y < emberRespawnTop || e.X < emberRespawnTop || e.X > w-emberRespawnTop {
		a.respawnEmber(e)
	}
}

// Embers exposes the ember set.
func (a *Animator) Embers() []Ember { return a.embers }
