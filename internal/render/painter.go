//go:build ebiten

package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// FramePainter uploads a composited frame into an ebiten image and draws it.
type FramePainter struct {
	w, h int
	img  *ebiten.Image
}

// NewFramePainter allocates a painter for frames of size w×h.
func NewFramePainter(w, h int) *FramePainter {
	fp := &FramePainter{}
	fp.ensure(w, h)
	return fp
}

func (fp *FramePainter) ensure(w, h int) {
	if fp.img != nil && fp.w == w && fp.h == h {
		return
	}
	if fp.img != nil {
		fp.img.Dispose()
	}
	fp.w, fp.h = w, h
	fp.img = ebiten.NewImage(w, h)
}

// Blit uploads frame and draws it onto dst scaled by scale.
func (fp *FramePainter) Blit(dst *ebiten.Image, frame *image.RGBA, scale int) {
	b := frame.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return
	}
	fp.ensure(b.Dx(), b.Dy())
	fp.img.WritePixels(frame.Pix)

	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(fp.img, op)
}

// Size returns the dimensions of the underlying image.
func (fp *FramePainter) Size() (int, int) { return fp.w, fp.h }
