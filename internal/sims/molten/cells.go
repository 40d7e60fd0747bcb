package molten

import (
	"image/color"

	"molten-core/internal/core"
	"molten-core/pkg/noise"
)

// ColorCells recomputes the ambient wash grid for time t. Cells are square,
// CellSize pixels wide, and one extra row and column cover the far edges.
// The returned grid is reused by the next call.
func (a *Animator) ColorCells(t float64) *core.Grid[color.NRGBA] {
	p := &a.cfg.Params
	size := max(p.CellSize, 1)
	cols := a.w/size + 1
	rows := a.h/size + 1
	if a.w <= 0 || a.h <= 0 {
		cols, rows = 0, 0
	}
	if a.cells == nil {
		a.cells = core.NewGrid[color.NRGBA](cols, rows)
	} else if a.cells.W != cols || a.cells.H != rows {
		a.cells.Resize(cols, rows)
	}

	s := p.NoiseScale
	for y := 0; y < rows; y++ {
		cy := (float64(y) + 0.5) * float64(size)
		for x := 0; x < cols; x++ {
			cx := (float64(x) + 0.5) * float64(size)
			n1 := noise.FBM(a.field, cx*s, cy*s+t, p.Octaves)
			n2 := noise.FBM(a.field, cx*s+31.4+t*0.7, cy*s-17.2, p.Octaves)
			a.cells.Set(x, y, washColor(n1, n2, p.WashIntensity))
		}
	}
	return a.cells
}

// NoiseAt samples the wash noise at screen position (x, y) on the current
// frame.
func (a *Animator) NoiseAt(x, y float64) float64 {
	s := a.cfg.Params.NoiseScale
	return noise.FBM(a.field, x*s, y*s+a.time(), a.cfg.Params.Octaves)
}
