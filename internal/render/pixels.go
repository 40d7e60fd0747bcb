package render

import (
	"image"
	"image/color"
)

// CellPair holds the two vertically stacked pixels a terminal cell shows
// with an upper half-block glyph: Top as foreground, Bottom as background.
type CellPair struct {
	Top    color.RGBA
	Bottom color.RGBA
}

// HalfBlocks samples img onto a cols×rows terminal grid, two pixel rows per
// cell, using nearest-neighbour lookups. buf is reused when large enough.
func HalfBlocks(buf []CellPair, img *image.RGBA, cols, rows int) []CellPair {
	total := cols * rows
	if total <= 0 || img == nil {
		return buf[:0]
	}
	if cap(buf) < total {
		buf = make([]CellPair, total)
	}
	buf = buf[:total]

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		for i := range buf {
			buf[i] = CellPair{}
		}
		return buf
	}
	sub := rows * 2
	for y := 0; y < rows; y++ {
		topY := b.Min.Y + (2*y)*h/sub
		botY := b.Min.Y + (2*y+1)*h/sub
		for x := 0; x < cols; x++ {
			sx := b.Min.X + x*w/cols
			buf[y*cols+x] = CellPair{
				Top:    img.RGBAAt(sx, topY),
				Bottom: img.RGBAAt(sx, botY),
			}
		}
	}
	return buf
}

// Opaque flattens a premultiplied pixel onto black, which is what a
// terminal cell can display.
func Opaque(c color.RGBA) (r, g, b uint8) {
	return c.R, c.G, c.B
}
