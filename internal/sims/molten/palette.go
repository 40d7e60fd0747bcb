package molten

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// baseColor is the dark ground every frame is cleared to.
	baseColor = color.NRGBA{R: 14, G: 6, B: 4, A: 255}
	// vignetteColor is what the frame edges darken towards.
	vignetteColor = color.NRGBA{R: 4, G: 1, B: 0, A: 255}
)

var emberPalette = []color.NRGBA{
	{R: 255, G: 107, B: 26, A: 255}, // orange
	{R: 255, G: 140, B: 66, A: 255}, // bright orange
	{R: 255, G: 171, B: 0, A: 255},  // amber
	{R: 255, G: 69, B: 0, A: 255},   // lava
}

// hsl converts hue (degrees), saturation and lightness to an opaque colour.
func hsl(h, s, l float64) color.NRGBA {
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// washColor maps two fbm samples in [-1, 1] to the ambient wash: the first
// picks the hue between deep red and orange, the second the brightness.
func washColor(n1, n2, intensity float64) color.NRGBA {
	h := 6 + 28*unit(n1)
	l := 0.06 + 0.16*unit(n2)
	c := hsl(h, 0.9, l)
	c.A = uint8(clamp01(intensity)*255 + 0.5)
	return c
}

func blobColor(hue float64) color.NRGBA  { return hsl(hue, 0.95, 0.5) }
func flowColor(hue float64) color.NRGBA  { return hsl(hue, 1, 0.6) }
func crackColor(hue float64) color.NRGBA { return hsl(hue, 1, 0.62) }

// shimmerColor is the pale tint of heat haze.
var shimmerColor = color.NRGBA{R: 255, G: 214, B: 170, A: 255}

// cursorColor is the warm light following the pointer.
var cursorColor = color.NRGBA{R: 255, G: 140, B: 66, A: 255}

// unit maps [-1, 1] onto [0, 1].
func unit(n float64) float64 { return clamp01(n*0.5 + 0.5) }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
