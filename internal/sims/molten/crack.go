package molten

import (
	"math"

	"molten-core/internal/render"
)

// Crack is a glowing fracture drawn along a fixed random-walk polyline. It
// waits Delay frames, fades in and out over MaxLife frames and then its slot
// is refilled with a fresh crack.
type Crack struct {
	Points  []render.Point
	Width   float64
	Hue     float64
	Delay   int
	Life    int
	MaxLife int
}

// Alpha is the crack's current visibility.
func (c *Crack) Alpha() float64 { return Envelope(c.Life, c.MaxLife) }

func (a *Animator) spawnCrack(c *Crack) {
	p := &a.cfg.Params
	n := a.rng.IntRange(p.CrackPointsMin, p.CrackPointsMax)
	pts := c.Points[:0]
	x := a.rng.Range(0, float64(a.w))
	y := a.rng.Range(0, float64(a.h))
	heading := a.rng.Angle()
	pts = append(pts, render.Point{X: x, Y: y})
	for i := 1; i < n; i++ {
		heading += a.rng.Signed() * p.CrackTurn
		step := a.rng.Range(p.CrackStepMin, p.CrackStepMax)
		x += math.Cos(heading) * step
		y += math.Sin(heading) * step
		pts = append(pts, render.Point{X: x, Y: y})
	}
	*c = Crack{
		Points:  pts,
		Width:   p.CrackWidth * a.rng.Range(0.6, 1.4),
		Hue:     a.rng.Range(24, 48),
		Delay:   a.rng.IntRange(0, p.CrackDelayMax),
		MaxLife: a.rng.IntRange(p.CrackLifeMin, p.CrackLifeMax),
	}
}

func (a *Animator) updateCrack(c *Crack) {
	if c.Delay > 0 {
		c.Delay--
		return
	}
	c.Life++
	if c.Life > c.MaxLife {
		a.spawnCrack(c)
	}
}

// regenerateCracks refills every crack slot for the current viewport.
func (a *Animator) regenerateCracks() {
	for i := range a.cracks {
		a.spawnCrack(&a.cracks[i])
	}
}

// Cracks exposes the crack set.
func (a *Animator) Cracks() []Crack { return a.cracks }
