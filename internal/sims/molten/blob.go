package molten

import "math"

// Blob is a large soft glow that drifts with the noise field, is pushed
// away from the cursor and wraps around the viewport edges.
type Blob struct {
	X, Y   float64
	VX, VY float64
	R      float64

	Hue   float64
	Alpha float64
	Phase float64

	// Seed offsets this blob's noise samples from every other blob.
	Seed float64
	Life int
}

func (a *Animator) spawnBlob(b *Blob) {
	p := &a.cfg.Params
	*b = Blob{
		X:     a.rng.Range(0, float64(a.w)),
		Y:     a.rng.Range(0, float64(a.h)),
		VX:    a.rng.Signed() * 0.5,
		VY:    a.rng.Signed() * 0.5,
		R:     a.rng.Range(p.BlobRadiusMin, p.BlobRadiusMax),
		Hue:   a.rng.Range(4, 32),
		Alpha: a.rng.Range(0.18, 0.35),
		Phase: a.rng.Angle(),
		Seed:  a.rng.Range(0, 1000),
	}
}

func (a *Animator) updateBlob(b *Blob, t float64) {
	p := &a.cfg.Params
	b.Life++
	b.Phase += 0.01

	b.VX *= p.BlobDamping
	b.VY *= p.BlobDamping

	if a.cursor.Active && p.RepelRadius > 0 {
		dx := b.X - a.cursor.X
		dy := b.Y - a.cursor.Y
		d := math.Hypot(dx, dy)
		if d < p.RepelRadius && d > 1e-6 {
			force := (p.RepelRadius - d) / p.RepelRadius * p.RepelForce
			b.VX += dx / d * force
			b.VY += dy / d * force
		}
	}

	angle := a.field.Noise2(b.Seed+t, b.Seed*0.5) * 2 * math.Pi
	b.VX += math.Cos(angle) * p.BlobDrift
	b.VY += math.Sin(angle) * p.BlobDrift

	if speed := math.Hypot(b.VX, b.VY); p.BlobMaxSpeed > 0 && speed > p.BlobMaxSpeed {
		b.VX *= p.BlobMaxSpeed / speed
		b.VY *= p.BlobMaxSpeed / speed
	}

	b.X += b.VX
	b.Y += b.VY
	b.X = wrapPadded(b.X, b.R, float64(a.w))
	b.Y = wrapPadded(b.Y, b.R, float64(a.h))
}

// wrapPadded moves v to the opposite side once it leaves [-pad, size+pad].
func wrapPadded(v, pad, size float64) float64 {
	switch {
	case v < -pad:
		return size + pad
	case v > size+pad:
		return -pad
	default:
		return v
	}
}

// Blobs exposes the blob set.
func (a *Animator) Blobs() []Blob { return a.blobs }
