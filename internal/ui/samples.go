package ui

import (
	"math"

	"molten-core/internal/core"
)

// fieldSample is one probe point of a vector or scalar field overlay:
// (cx, cy) in scene pixels, (sx, sy) in screen pixels.
type fieldSample struct {
	cx, cy float64
	sx, sy float64
}

// sampleGrid lays roughly target probes over a size viewport, spaced
// between minSpacing and maxSpacing scene pixels and centred. It returns
// the samples and the spacing in screen pixels.
func sampleGrid(dst []fieldSample, size core.Size, scale int, target float64, minSpacing, maxSpacing int) ([]fieldSample, float64) {
	dst = dst[:0]
	if size.Empty() {
		return dst, 0
	}
	if scale <= 0 {
		scale = 1
	}
	spacing := int(math.Sqrt(float64(size.W*size.H) / target))
	spacing = min(max(spacing, minSpacing), maxSpacing)
	if spacing <= 0 {
		spacing = 1
	}

	countX := max((size.W+spacing-1)/spacing, 1)
	countY := max((size.H+spacing-1)/spacing, 1)
	startX := max((size.W-1-(countX-1)*spacing)/2, 0)
	startY := max((size.H-1-(countY-1)*spacing)/2, 0)

	for yi := 0; yi < countY; yi++ {
		cy := float64(min(startY+yi*spacing, size.H-1)) + 0.5
		for xi := 0; xi < countX; xi++ {
			cx := float64(min(startX+xi*spacing, size.W-1)) + 0.5
			dst = append(dst, fieldSample{
				cx: cx,
				cy: cy,
				sx: cx * float64(scale),
				sy: cy * float64(scale),
			})
		}
	}
	return dst, float64(spacing * scale)
}

// arrowColor ramps from a dim ember red to bright yellow with speed.
func arrowColor(t float64) (r, g, b, a uint8) {
	t = clamp01(t)
	return uint8(math.Round(170 + 85*t)),
		uint8(math.Round(60 + 170*t)),
		uint8(math.Round(20 + 60*t)),
		uint8(math.Round(140 + 100*t))
}

// heatColor maps a noise sample in [-1, 1] to a translucent cold-to-hot tint.
func heatColor(v float64) (r, g, b, a uint8) {
	t := clamp01((v + 1) / 2)
	return uint8(math.Round(40 + 215*t)),
		uint8(math.Round(60 + 100*t*t)),
		uint8(math.Round(160 * (1 - t))),
		110
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
