package core

// Grid stores a 2D grid of values in row-major order.
type Grid[T any] struct {
	W, H  int
	cells []T
}

// NewGrid allocates a grid with the given dimensions. Non-positive
// dimensions produce an empty grid.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 || h <= 0 {
		return &Grid[T]{}
	}
	return &Grid[T]{W: w, H: h, cells: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.cells }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// At returns the value at (x, y).
func (g *Grid[T]) At(x, y int) T { return g.cells[g.Index(x, y)] }

// Set stores v at (x, y).
func (g *Grid[T]) Set(x, y int, v T) { g.cells[g.Index(x, y)] = v }

// Resize reallocates the grid when the dimensions change, keeping the
// backing array when it is large enough. Contents are zeroed.
func (g *Grid[T]) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		g.W, g.H, g.cells = 0, 0, g.cells[:0]
		return
	}
	n := w * h
	if cap(g.cells) < n {
		g.cells = make([]T, n)
	} else {
		g.cells = g.cells[:n]
		clear(g.cells)
	}
	g.W, g.H = w, h
}
