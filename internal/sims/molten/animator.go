package molten

import (
	"image/color"

	"github.com/charmbracelet/harmonica"

	"molten-core/internal/core"
	pcore "molten-core/pkg/core"
	"molten-core/pkg/noise"
)

// highlightFPS is the frame rate the cursor spring is tuned for.
const highlightFPS = 60

// Animator owns the noise field and every entity set of the molten scene
// and composites them onto a render.Surface.
type Animator struct {
	cfg  Config
	name string

	w, h int

	rng   *pcore.RNG
	field noise.Source
	frame int

	flowOffX, flowOffY float64

	cursor    core.Cursor
	highlight highlight

	blobs     []Blob
	flowNodes []FlowNode
	cracks    []Crack
	embers    []Ember
	shimmers  []ShimmerBand
	cells     *core.Grid[color.NRGBA]
	seeded    bool
}

// highlight is the eased position of the cursor glow.
type highlight struct {
	spring   harmonica.Spring
	freq     float64
	damping  float64
	x, y     float64
	vx, vy   float64
	tracking bool
}

// New returns a molten scene with the provided dimensions using defaults.
func New(w, h int) *Animator {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a molten scene seeded from cfg.Seed. Low-power
// configs have their entity counts reduced first.
func NewWithConfig(cfg Config) *Animator {
	if cfg.LowPower {
		cfg.Params = cfg.Params.Reduced()
	}
	cfg.Params.normalize()
	a := &Animator{
		cfg:  cfg,
		name: "molten",
		w:    max(cfg.Width, 0),
		h:    max(cfg.Height, 0),
	}
	a.Reset(0)
	return a
}

// Name returns the scene identifier.
func (a *Animator) Name() string { return a.name }

// Size reports the viewport dimensions.
func (a *Animator) Size() core.Size { return core.Size{W: a.w, H: a.h} }

// Config returns the active configuration.
func (a *Animator) Config() Config { return a.cfg }

// Frame returns the number of simulation steps since the last reset.
func (a *Animator) Frame() int { return a.frame }

// Field exposes the noise basis driving the scene.
func (a *Animator) Field() noise.Source { return a.field }

// Reset rebuilds the noise field and every entity set. A zero seed reuses
// the configured seed.
func (a *Animator) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = a.cfg.Seed
	}
	p := &a.cfg.Params
	a.rng = pcore.NewRNG(effective)
	a.field = noise.NewSource(p.Noise, effective)
	a.frame = 0
	a.flowOffX = a.rng.Range(0, 256)
	a.flowOffY = a.rng.Range(0, 256)
	a.highlight.tracking = false

	a.blobs = make([]Blob, max(p.Blobs, 0))
	a.flowNodes = make([]FlowNode, max(p.FlowNodes, 0))
	a.cracks = make([]Crack, max(p.Cracks, 0))
	a.embers = make([]Ember, max(p.Embers, 0))
	a.shimmers = make([]ShimmerBand, max(p.Shimmers, 0))
	a.seeded = false
	a.seed()
}

// seed fills every entity slot. It waits for a non-empty viewport.
func (a *Animator) seed() {
	if a.w == 0 || a.h == 0 {
		return
	}
	for i := range a.blobs {
		a.spawnBlob(&a.blobs[i])
	}
	for i := range a.flowNodes {
		a.spawnFlowNode(&a.flowNodes[i])
	}
	for i := range a.cracks {
		a.spawnCrack(&a.cracks[i])
	}
	for i := range a.embers {
		a.spawnEmber(&a.embers[i])
	}
	for i := range a.shimmers {
		a.spawnShimmer(&a.shimmers[i])
	}
	a.seeded = true
}

// Step advances every entity by one frame. It is a no-op on an empty
// viewport.
func (a *Animator) Step() {
	if a.w == 0 || a.h == 0 || !a.seeded {
		return
	}
	a.frame++
	t := a.time()
	for i := range a.blobs {
		a.updateBlob(&a.blobs[i], t)
	}
	for i := range a.flowNodes {
		a.updateFlowNode(&a.flowNodes[i], t)
	}
	for i := range a.cracks {
		a.updateCrack(&a.cracks[i])
	}
	for i := range a.embers {
		a.updateEmber(&a.embers[i])
	}
	for i := range a.shimmers {
		a.updateShimmer(&a.shimmers[i])
	}
	a.updateHighlight()
}

// Resize changes the viewport. Cracks depend on the viewport geometry and
// are regenerated; the other sets wrap or respawn into the new bounds on
// their own.
func (a *Animator) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w == a.w && h == a.h {
		return
	}
	a.w, a.h = w, h
	if w == 0 || h == 0 {
		return
	}
	if !a.seeded {
		a.seed()
		return
	}
	a.regenerateCracks()
}

// SetCursor records a pointer move and activates the cursor.
func (a *Animator) SetCursor(x, y float64) {
	a.cursor = core.Cursor{X: x, Y: y, Active: true}
}

// LeaveCursor deactivates the cursor when the pointer leaves the surface.
func (a *Animator) LeaveCursor() {
	a.cursor.Active = false
	a.highlight.tracking = false
}

// Cursor returns the current cursor state.
func (a *Animator) Cursor() core.Cursor { return a.cursor }

// Highlight returns where the cursor glow is drawn.
func (a *Animator) Highlight() (float64, float64) {
	if a.cfg.Params.CursorSpring <= 0 || !a.highlight.tracking {
		return a.cursor.X, a.cursor.Y
	}
	return a.highlight.x, a.highlight.y
}

func (a *Animator) updateHighlight() {
	p := &a.cfg.Params
	hl := &a.highlight
	if !a.cursor.Active || p.CursorSpring <= 0 {
		hl.tracking = false
		return
	}
	if hl.freq != p.CursorSpring || hl.damping != p.CursorDamping {
		hl.spring = harmonica.NewSpring(harmonica.FPS(highlightFPS), p.CursorSpring, p.CursorDamping)
		hl.freq, hl.damping = p.CursorSpring, p.CursorDamping
	}
	if !hl.tracking {
		hl.x, hl.y = a.cursor.X, a.cursor.Y
		hl.vx, hl.vy = 0, 0
		hl.tracking = true
		return
	}
	hl.x, hl.vx = hl.spring.Update(hl.x, hl.vx, a.cursor.X)
	hl.y, hl.vy = hl.spring.Update(hl.y, hl.vy, a.cursor.Y)
}

// time is the noise-space time coordinate of the current frame.
func (a *Animator) time() float64 {
	return float64(a.frame) * a.cfg.Params.TimeScale
}
