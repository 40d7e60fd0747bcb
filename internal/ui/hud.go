//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"molten-core/internal/core"
)

// HUD renders the parameter panel to the right of the scene view.
type HUD struct {
	controls     *Controls
	width        int
	panel        *ebiten.Image
	pixel        *ebiten.Image
	rows         []hudRow
	panelOffsetX int
	scroll       int
	height       int
}

type hudRow struct {
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for the provided scene and panel width.
func NewHUD(scene core.Scene, width int) *HUD {
	h := &HUD{controls: NewControls(scene), width: max(width, 0)}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.layoutControls()
	return h
}

// Width reports the panel width in window pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the parameter values and handles clicks on the +/-
// buttons. panelOffsetX is the window x coordinate of the panel.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.controls.Refresh()
	h.handleScroll()
	h.handleInput()
}

// Contains reports whether window point (x, y) lies on the panel.
func (h *HUD) Contains(x, y int) bool {
	return h != nil && h.width > 0 && x >= h.panelOffsetX && x < h.panelOffsetX+h.width
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	h.height = height
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		if h.panel != nil {
			h.panel.Dispose()
		}
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 20, G: 12, B: 10, A: 255})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) handleScroll() {
	mx, my := ebiten.CursorPosition()
	if !h.Contains(mx, my) {
		return
	}
	_, dy := ebiten.Wheel()
	if dy == 0 {
		return
	}
	content := controlsTop + len(h.rows)*lineHeight + panelPadding
	h.scroll = min(max(h.scroll-int(dy*lineHeight), 0), max(content-h.height, 0))
}

func (h *HUD) handleInput() {
	if len(h.rows) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px, py := mx-h.panelOffsetX, my+h.scroll
	for i, row := range h.rows {
		if pointInRect(px, py, row.minusRect) {
			h.controls.Adjust(i, -1)
			return
		}
		if pointInRect(px, py, row.plusRect) {
			h.controls.Adjust(i, 1)
			return
		}
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.controls.Title(), face, panelPadding, headerY, color.RGBA{R: 240, G: 200, B: 160, A: 255})
	if len(h.rows) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, headerY+infoSpacing, color.RGBA{R: 160, G: 150, B: 140, A: 255})
		return
	}
	for i, row := range h.rows {
		row.top -= h.scroll
		row.minusRect = row.minusRect.Sub(image.Pt(0, h.scroll))
		row.plusRect = row.plusRect.Sub(image.Pt(0, h.scroll))
		if row.top+lineHeight < controlsTop || row.top > h.height {
			continue
		}
		labelY := row.top + labelBaseline
		text.Draw(h.panel, h.controls.Label(i), face, panelPadding, labelY, color.RGBA{R: 230, G: 220, B: 210, A: 255})

		value, ok := h.controls.Value(i)
		valueColor := color.RGBA{R: 255, G: 190, B: 120, A: 255}
		if !ok {
			valueColor = color.RGBA{R: 160, G: 150, B: 140, A: 255}
		}
		valueX := row.minusRect.Min.X - buttonGap - text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, valueX, labelY, valueColor)

		h.drawButton(row.minusRect, "-", h.controls.CanAdjust(i, -1))
		h.drawButton(row.plusRect, "+", h.controls.CanAdjust(i, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 70, G: 40, B: 30, A: 255}
	fg := color.RGBA{R: 250, G: 230, B: 210, A: 255}
	if !enabled {
		bg = color.RGBA{R: 40, G: 26, B: 22, A: 255}
		fg = color.RGBA{R: 130, G: 120, B: 110, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	h.rows = make([]hudRow, h.controls.Len())
	for i := range h.rows {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.rows[i] = hudRow{top: top, minusRect: minusRect, plusRect: plusRect}
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 26
	buttonSize     = 20
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 17
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 10
)
