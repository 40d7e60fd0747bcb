package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// ErrEmptySurface is returned when a raster would have zero area.
var ErrEmptySurface = errors.New("render: surface has zero area")

// Raster is a software Surface backed by an *image.RGBA. Each primitive is
// rasterised by gg into a scratch layer the size of its bounds, optionally
// blurred for glow, then blended onto the frame.
type Raster struct {
	img *image.RGBA
}

// NewRaster allocates a w×h raster.
func NewRaster(w, h int) (*Raster, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("new raster %dx%d: %w", w, h, ErrEmptySurface)
	}
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, w, h))}, nil
}

// Resize reallocates the backing image when the dimensions change.
func (r *Raster) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("resize raster %dx%d: %w", w, h, ErrEmptySurface)
	}
	if b := r.img.Bounds(); b.Dx() == w && b.Dy() == h {
		return nil
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	return nil
}

// Image exposes the frame. The pixels are premultiplied RGBA.
func (r *Raster) Image() *image.RGBA { return r.img }

// Size reports the raster dimensions.
func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the whole frame with c.
func (r *Raster) Clear(c color.NRGBA) {
	pr, pg, pb, pa := c.RGBA()
	px := [4]uint8{uint8(pr >> 8), uint8(pg >> 8), uint8(pb >> 8), uint8(pa >> 8)}
	pix := r.img.Pix
	for i := 0; i < len(pix); i += 4 {
		copy(pix[i:i+4], px[:])
	}
}

// FillCells upsamples the grid with linear filtering to the full frame.
func (r *Raster) FillCells(cols, rows int, cells []color.NRGBA, blend Blend) {
	if cols <= 0 || rows <= 0 || len(cells) != cols*rows {
		return
	}
	grid := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for i, c := range cells {
		o := i * 4
		grid.Pix[o+0] = c.R
		grid.Pix[o+1] = c.G
		grid.Pix[o+2] = c.B
		grid.Pix[o+3] = c.A
	}
	w, h := r.Size()
	composite(r.img, imaging.Resize(grid, w, h, imaging.Linear), image.Point{}, blend)
}

// FillRadial fills the bounding square of the circle with a radial gradient
// centred on (cx, cy). Pixels beyond r take the last stop's colour.
func (r *Raster) FillRadial(cx, cy, radius float64, stops []Stop, blend Blend) {
	if radius <= 0 || len(stops) == 0 {
		return
	}
	bounds := circleBounds(cx, cy, radius)
	r.paint(bounds, 0, blend, func(dc *gg.Context, o Point) {
		grad := gg.NewRadialGradient(cx-o.X, cy-o.Y, 0, cx-o.X, cy-o.Y, radius)
		addStops(grad, stops)
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, float64(dc.Width()), float64(dc.Height()))
		dc.Fill()
	})
}

// FillLinear fills area with a gradient running from -> to.
func (r *Raster) FillLinear(area Rect, from, to Point, stops []Stop, blend Blend) {
	if area.W <= 0 || area.H <= 0 || len(stops) == 0 {
		return
	}
	bounds := image.Rect(
		int(math.Floor(area.X)), int(math.Floor(area.Y)),
		int(math.Ceil(area.X+area.W)), int(math.Ceil(area.Y+area.H)),
	)
	r.paint(bounds, 0, blend, func(dc *gg.Context, o Point) {
		grad := gg.NewLinearGradient(from.X-o.X, from.Y-o.Y, to.X-o.X, to.Y-o.Y)
		addStops(grad, stops)
		dc.SetFillStyle(grad)
		dc.DrawRectangle(area.X-o.X, area.Y-o.Y, area.W, area.H)
		dc.Fill()
	})
}

// FillCircle draws a solid disc with an optional blurred halo.
func (r *Raster) FillCircle(cx, cy, radius float64, c color.NRGBA, glow float64, blend Blend) {
	if radius <= 0 || c.A == 0 {
		return
	}
	r.paint(circleBounds(cx, cy, radius), glow, blend, func(dc *gg.Context, o Point) {
		dc.DrawCircle(cx-o.X, cy-o.Y, radius)
		dc.SetColor(c)
		dc.Fill()
	})
}

// StrokePolyline strokes the connected segments through pts.
func (r *Raster) StrokePolyline(pts []Point, st Stroke) {
	if len(pts) < 2 || st.Width <= 0 || st.Color.A == 0 {
		return
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	half := st.Width
	bounds := image.Rect(
		int(math.Floor(minX-half)), int(math.Floor(minY-half)),
		int(math.Ceil(maxX+half)), int(math.Ceil(maxY+half)),
	)
	r.paint(bounds, st.Glow, st.Blend, func(dc *gg.Context, o Point) {
		dc.SetLineWidth(st.Width)
		dc.SetLineCap(ggCap(st.Cap))
		dc.SetLineJoin(ggJoin(st.Join))
		dc.MoveTo(pts[0].X-o.X, pts[0].Y-o.Y)
		for _, p := range pts[1:] {
			dc.LineTo(p.X-o.X, p.Y-o.Y)
		}
		dc.SetColor(st.Color)
		dc.Stroke()
	})
}

// paint renders draw into a scratch layer covering bounds (grown by the glow
// margin and clipped to the frame) and blends it in. draw receives the layer
// origin in frame coordinates and must subtract it; gg evaluates gradients in
// device space so a context transform would not move them. With glow > 0 a
// blurred copy of the layer is blended first.
func (r *Raster) paint(bounds image.Rectangle, glow float64, blend Blend, draw func(dc *gg.Context, origin Point)) {
	if glow > 0 {
		bounds = bounds.Inset(-int(math.Ceil(glow * 3)))
	}
	bounds = bounds.Intersect(r.img.Bounds())
	if bounds.Empty() {
		return
	}
	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	draw(dc, Point{X: float64(bounds.Min.X), Y: float64(bounds.Min.Y)})

	layer := imaging.Clone(dc.Image())
	if glow > 0 {
		composite(r.img, imaging.Blur(layer, glow), bounds.Min, blend)
	}
	composite(r.img, layer, bounds.Min, blend)
}

func circleBounds(cx, cy, radius float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius)), int(math.Ceil(cy+radius)),
	)
}

func addStops(grad gg.Gradient, stops []Stop) {
	for _, s := range stops {
		grad.AddColorStop(s.Offset, s.Color)
	}
}

func ggCap(c LineCap) gg.LineCap {
	switch c {
	case CapButt:
		return gg.LineCapButt
	case CapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapRound
	}
}

func ggJoin(j LineJoin) gg.LineJoin {
	if j == JoinBevel {
		return gg.LineJoinBevel
	}
	return gg.LineJoinRound
}

var _ Surface = (*Raster)(nil)
