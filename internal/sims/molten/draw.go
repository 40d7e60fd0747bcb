package molten

import (
	"math"

	"molten-core/internal/render"
)

// Layer names in compositing order. A Surface that can label its input
// (render.Recorder) receives one Tag call per layer.
const (
	LayerBase     = "base"
	LayerWash     = "wash"
	LayerBlobs    = "blobs"
	LayerFlow     = "flow"
	LayerCracks   = "cracks"
	LayerEmbers   = "embers"
	LayerShimmer  = "shimmer"
	LayerCursor   = "cursor"
	LayerVignette = "vignette"
)

type tagger interface {
	Tag(label string)
}

// Draw composites the current frame onto dst back to front. The cursor
// layer is skipped while the cursor is inactive.
func (a *Animator) Draw(dst render.Surface) {
	if dst == nil || a.w == 0 || a.h == 0 {
		return
	}
	tag := func(string) {}
	if t, ok := dst.(tagger); ok {
		tag = t.Tag
	}

	tag(LayerBase)
	dst.Clear(baseColor)

	tag(LayerWash)
	a.drawWash(dst)

	tag(LayerBlobs)
	a.drawBlobs(dst)

	tag(LayerFlow)
	a.drawFlowNodes(dst)

	tag(LayerCracks)
	a.drawCracks(dst)

	tag(LayerEmbers)
	a.drawEmbers(dst)

	tag(LayerShimmer)
	a.drawShimmer(dst)

	if a.cursor.Active {
		tag(LayerCursor)
		a.drawCursor(dst)
	}

	tag(LayerVignette)
	a.drawVignette(dst)
	tag("")
}

func (a *Animator) drawWash(dst render.Surface) {
	grid := a.ColorCells(a.time())
	if grid.W == 0 || grid.H == 0 {
		return
	}
	dst.FillCells(grid.W, grid.H, grid.Cells(), render.BlendNormal)
}

func (a *Animator) drawBlobs(dst render.Surface) {
	for i := range a.blobs {
		b := &a.blobs[i]
		r := b.R * (1 + 0.08*math.Sin(b.Phase))
		c := blobColor(b.Hue)
		dst.FillRadial(b.X, b.Y, r, []render.Stop{
			{Offset: 0, Color: render.WithAlpha(c, b.Alpha)},
			{Offset: 0.55, Color: render.WithAlpha(c, b.Alpha*0.4)},
			{Offset: 1, Color: render.WithAlpha(c, 0)},
		}, render.BlendNormal)
	}
}

func (a *Animator) drawFlowNodes(dst render.Surface) {
	const trail = 6
	for i := range a.flowNodes {
		n := &a.flowNodes[i]
		c := flowColor(n.Hue)
		if speed := math.Hypot(n.VX, n.VY); speed > 0.05 {
			dst.StrokePolyline([]render.Point{
				{X: n.X - n.VX*trail, Y: n.Y - n.VY*trail},
				{X: n.X, Y: n.Y},
			}, render.Stroke{
				Width: n.Size * 0.8,
				Color: render.WithAlpha(c, n.Alpha*0.5),
				Cap:   render.CapRound,
				Blend: render.BlendScreen,
			})
		}
		dst.FillCircle(n.X, n.Y, n.Size, render.WithAlpha(c, n.Alpha), n.Size, render.BlendScreen)
	}
}

func (a *Animator) drawCracks(dst render.Surface) {
	glow := a.cfg.Params.CrackGlow
	for i := range a.cracks {
		c := &a.cracks[i]
		alpha := c.Alpha()
		if alpha <= 0 || len(c.Points) < 2 {
			continue
		}
		dst.StrokePolyline(c.Points, render.Stroke{
			Width: c.Width,
			Color: render.WithAlpha(crackColor(c.Hue), alpha),
			Cap:   render.CapRound,
			Join:  render.JoinRound,
			Glow:  glow,
		})
	}
}

func (a *Animator) drawEmbers(dst render.Surface) {
	glow := a.cfg.Params.EmberGlow
	for i := range a.embers {
		e := &a.embers[i]
		alpha := e.Alpha()
		if alpha <= 0 || e.Size <= 0 {
			continue
		}
		dst.FillCircle(e.X, e.Y, e.Size, render.WithAlpha(e.Color, alpha), glow, render.BlendNormal)
	}
}

func (a *Animator) drawShimmer(dst render.Surface) {
	wobble := a.cfg.Params.ShimmerWobble
	for i := range a.shimmers {
		s := &a.shimmers[i]
		x := s.X + s.Offset(wobble) - s.W/2
		y := s.Y - s.H/2
		edge := render.WithAlpha(shimmerColor, 0)
		dst.FillLinear(render.Rect{X: x, Y: y, W: s.W, H: s.H},
			render.Point{X: x, Y: y}, render.Point{X: x, Y: y + s.H},
			[]render.Stop{
				{Offset: 0, Color: edge},
				{Offset: 0.5, Color: render.WithAlpha(shimmerColor, s.Alpha)},
				{Offset: 1, Color: edge},
			}, render.BlendOverlay)
	}
}

func (a *Animator) drawCursor(dst render.Surface) {
	r := a.cfg.Params.CursorRadius
	if r <= 0 {
		return
	}
	x, y := a.Highlight()
	dst.FillRadial(x, y, r, []render.Stop{
		{Offset: 0, Color: render.WithAlpha(cursorColor, 0.22)},
		{Offset: 0.5, Color: render.WithAlpha(cursorColor, 0.08)},
		{Offset: 1, Color: render.WithAlpha(cursorColor, 0)},
	}, render.BlendScreen)
}

func (a *Animator) drawVignette(dst render.Surface) {
	strength := a.cfg.Params.Vignette
	if strength <= 0 {
		return
	}
	cx, cy := float64(a.w)/2, float64(a.h)/2
	dst.FillRadial(cx, cy, math.Hypot(cx, cy), []render.Stop{
		{Offset: 0, Color: render.WithAlpha(vignetteColor, 0)},
		{Offset: 0.55, Color: render.WithAlpha(vignetteColor, 0)},
		{Offset: 1, Color: render.WithAlpha(vignetteColor, strength)},
	}, render.BlendNormal)
}
