//go:build ebiten

package app

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"molten-core/internal/core"
	"molten-core/internal/render"
	"molten-core/internal/ui"
)

// Game adapts a scene to the ebiten.Game interface.
type Game struct {
	scene   core.Scene
	raster  *render.Raster
	painter *render.FramePainter
	overlay *ui.Overlay
	hud     *ui.HUD
	showHUD bool
	logger  *log.Logger

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	inside   bool
	outside  core.Size
}

// New constructs a Game for the provided scene.
func New(scene core.Scene, cfg *Config, logger *log.Logger) (*Game, error) {
	size := scene.Size()
	raster, err := render.NewRaster(size.W, size.H)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		scene:   scene,
		raster:  raster,
		painter: render.NewFramePainter(size.W, size.H),
		overlay: ui.NewOverlay(scene, cfg.Scale),
		logger:  logger,
		scale:   max(cfg.Scale, 1),
		seed:    cfg.Seed,
	}
	if cfg.HUD {
		g.hud = ui.NewHUD(scene, HUDWidth)
		g.showHUD = true
	}
	return g, nil
}

// Reset reinitializes the scene with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.scene.Reset(seed)
	g.tickOnce = false
	g.logger.Debug("scene reset", "seed", seed)
}

// Update handles input and advances the scene by one frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) && g.hud != nil {
		g.showHUD = !g.showHUD
		g.outside = core.Size{}
	}

	g.overlay.Update()
	if g.showHUD {
		g.hud.Update(g.viewWidth())
	}
	g.trackCursor()

	if !g.paused || g.tickOnce {
		g.scene.Step()
		g.tickOnce = false
	}
	return nil
}

// trackCursor forwards pointer moves inside the scene view and reports a
// leave once the pointer exits it, the window included.
func (g *Game) trackCursor() {
	mx, my := ebiten.CursorPosition()
	size := g.scene.Size()
	inside := mx >= 0 && my >= 0 && mx < size.W*g.scale && my < size.H*g.scale && ebiten.IsFocused()
	if inside {
		g.scene.SetCursor(float64(mx)/float64(g.scale), float64(my)/float64(g.scale))
	} else if g.inside {
		g.scene.LeaveCursor()
	}
	g.inside = inside
}

// Draw composites the scene into the raster and uploads it.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(g.raster)
	g.painter.Blit(screen, g.raster.Image(), g.scale)
	g.overlay.Draw(screen)
	if g.showHUD {
		g.hud.Draw(screen, g.viewWidth(), g.outside.H)
	}
}

// Layout resizes the scene to fill the window beside the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth == g.outside.W && outsideHeight == g.outside.H {
		return outsideWidth, outsideHeight
	}
	g.outside = core.Size{W: outsideWidth, H: outsideHeight}
	w := (outsideWidth - g.hudWidth()) / g.scale
	h := outsideHeight / g.scale
	if err := g.raster.Resize(w, h); err != nil {
		if !errors.Is(err, render.ErrEmptySurface) {
			g.logger.Error("resize", "err", err)
		}
		g.scene.Resize(0, 0)
		return outsideWidth, outsideHeight
	}
	g.scene.Resize(w, h)
	g.logger.Debug("viewport resized", "w", w, "h", h)
	return outsideWidth, outsideHeight
}

func (g *Game) hudWidth() int {
	if !g.showHUD {
		return 0
	}
	return g.hud.Width()
}

func (g *Game) viewWidth() int {
	return g.scene.Size().W * g.scale
}

// Run opens the window and blocks until it is closed.
func Run(scene core.Scene, cfg *Config, logger *log.Logger) error {
	game, err := New(scene, cfg, logger)
	if err != nil {
		return err
	}
	size := scene.Size()
	ebiten.SetWindowTitle("molten-core - " + scene.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*game.scale+game.hudWidth(), size.H*game.scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
