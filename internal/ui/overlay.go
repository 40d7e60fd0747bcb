//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"molten-core/internal/core"
)

type flowFieldProvider interface {
	FlowVectorAt(x, y float64) (float64, float64)
}

type noiseFieldProvider interface {
	NoiseAt(x, y float64) float64
}

// Overlay draws optional debugging visuals on top of the composited frame:
// key 1 toggles the flow field arrows, key 2 the noise heatmap.
type Overlay struct {
	scene    core.Scene
	scale    int
	showFlow bool
	showHeat bool

	pixel *ebiten.Image

	flowSamples []fieldSample
	flowSpan    float64
	heatSamples []fieldSample
	heatSpan    float64
	cacheSize   core.Size
	cacheScale  int
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(scene core.Scene, scale int) *Overlay {
	o := &Overlay{scene: scene, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the toggle keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showFlow = !o.showFlow
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHeat = !o.showHeat
	}
}

// Draw renders the enabled overlays onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showFlow && !o.showHeat {
		return
	}
	size := o.scene.Size()
	if size.Empty() {
		return
	}
	scale := max(o.scale, 1)
	if o.cacheSize != size || o.cacheScale != scale {
		o.flowSamples, o.flowSpan = sampleGrid(o.flowSamples, size, scale, 360, 12, 48)
		o.heatSamples, o.heatSpan = sampleGrid(o.heatSamples, size, scale, 2400, 4, 24)
		o.cacheSize, o.cacheScale = size, scale
	}

	if o.showHeat {
		if provider, ok := o.scene.(noiseFieldProvider); ok {
			o.drawHeat(screen, provider)
		}
	}
	if o.showFlow {
		if provider, ok := o.scene.(flowFieldProvider); ok {
			o.drawFlowField(screen, provider)
		}
	}
}

func (o *Overlay) drawHeat(screen *ebiten.Image, provider noiseFieldProvider) {
	half := o.heatSpan / 2
	for _, s := range o.heatSamples {
		r, g, b, a := heatColor(provider.NoiseAt(s.cx, s.cy))
		o.drawRect(screen, s.sx-half, s.sy-half, o.heatSpan, o.heatSpan, color.NRGBA{R: r, G: g, B: b, A: a})
	}
}

func (o *Overlay) drawFlowField(screen *ebiten.Image, provider flowFieldProvider) {
	const (
		calmThreshold = 0.05
		headAngle     = math.Pi / 6
	)
	minLength := o.flowSpan * 0.35
	maxLength := o.flowSpan * 0.7
	maxSpeed := 2.0
	thickness := math.Max(float64(o.cacheScale), 1)

	for _, s := range o.flowSamples {
		vx, vy := provider.FlowVectorAt(s.cx, s.cy)
		speed := math.Hypot(vx, vy)
		if speed < calmThreshold {
			dot := o.flowSpan * 0.15
			o.drawRect(screen, s.sx-dot/2, s.sy-dot/2, dot, dot, color.NRGBA{R: 120, G: 60, B: 30, A: 120})
			continue
		}
		nx, ny := vx/speed, vy/speed
		normalized := clamp01(speed / maxSpeed)
		length := minLength + (maxLength-minLength)*math.Sqrt(normalized)
		headLength := length * 0.3
		tailX, tailY := s.sx-nx*length*0.4, s.sy-ny*length*0.4
		tipX, tipY := s.sx+nx*length*0.6, s.sy+ny*length*0.6

		r, g, b, a := arrowColor(normalized)
		col := color.NRGBA{R: r, G: g, B: b, A: a}
		o.drawLine(screen, tailX, tailY, tipX-nx*headLength, tipY-ny*headLength, thickness, col)

		angle := math.Atan2(ny, nx)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*headLength, tipY-math.Sin(angle+headAngle)*headLength, thickness*0.85, col)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*headLength, tipY-math.Sin(angle-headAngle)*headLength, thickness*0.85, col)
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.NRGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.NRGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
