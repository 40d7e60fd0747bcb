package render

import (
	"image/color"
	"math"
)

// Point is a position in surface pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in surface pixels.
type Rect struct {
	X, Y, W, H float64
}

// Blend selects how a primitive combines with what is already on the surface.
type Blend uint8

const (
	// BlendNormal is plain source-over.
	BlendNormal Blend = iota
	// BlendScreen brightens: 1-(1-a)(1-b).
	BlendScreen
	// BlendOverlay multiplies darks and screens lights of the backdrop.
	BlendOverlay
	// BlendAdd sums premultiplied channels ("lighter").
	BlendAdd
)

func (b Blend) String() string {
	switch b {
	case BlendScreen:
		return "screen"
	case BlendOverlay:
		return "overlay"
	case BlendAdd:
		return "add"
	default:
		return "normal"
	}
}

// LineCap mirrors the usual canvas cap styles.
type LineCap uint8

const (
	CapRound LineCap = iota
	CapButt
	CapSquare
)

// LineJoin mirrors the usual canvas join styles.
type LineJoin uint8

const (
	JoinRound LineJoin = iota
	JoinBevel
)

// Stop is one colour stop of a gradient; Offset is in [0, 1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Stroke describes how a polyline is drawn. Glow is the blur radius of a
// halo drawn beneath the line; zero disables it.
type Stroke struct {
	Width float64
	Color color.NRGBA
	Cap   LineCap
	Join  LineJoin
	Glow  float64
	Blend Blend
}

// Surface is the raster target the compositor draws on.
type Surface interface {
	Size() (int, int)
	Clear(c color.NRGBA)
	// FillCells stretches a cols×rows grid of colours smoothly over the
	// whole surface.
	FillCells(cols, rows int, cells []color.NRGBA, blend Blend)
	FillRadial(cx, cy, r float64, stops []Stop, blend Blend)
	FillLinear(area Rect, from, to Point, stops []Stop, blend Blend)
	FillCircle(cx, cy, r float64, c color.NRGBA, glow float64, blend Blend)
	StrokePolyline(pts []Point, st Stroke)
}

// WithAlpha returns c with its alpha scaled by a, clamped to [0, 1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a <= 0 {
		c.A = 0
		return c
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(math.Round(float64(c.A) * a))
	return c
}
