// Package term shows a scene in a terminal using half-block glyphs, two
// scene pixel rows per character cell.
package term

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"molten-core/internal/core"
	"molten-core/internal/render"
	"molten-core/internal/ui"
)

const upperHalf = '▀'

// Options tunes the terminal host.
type Options struct {
	// TPS is the simulation rate in ticks per second.
	TPS int
	// CellPixels is the number of scene pixels one half-cell covers.
	CellPixels int
	Logger     *log.Logger
}

// Host drives a scene on a tcell screen.
type Host struct {
	screen   tcell.Screen
	scene    core.Scene
	raster   *render.Raster
	timer    *core.FixedStep
	controls *ui.Controls
	logger   *log.Logger

	cellPx   int
	cols     int
	rows     int
	cells    []render.CellPair
	paused   bool
	tickOnce bool
	selected int
	seed     int64
}

// New wraps an initialised screen. The scene is resized to the screen.
func New(screen tcell.Screen, scene core.Scene, opts Options) *Host {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	h := &Host{
		screen:   screen,
		scene:    scene,
		timer:    core.NewFixedStep(opts.TPS),
		controls: ui.NewControls(scene),
		logger:   opts.Logger,
		cellPx:   max(opts.CellPixels, 1),
	}
	h.resize()
	return h
}

// Run polls input and renders until ctx is done or the user quits.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.EnableFocus()
	h.screen.HideCursor()

	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.timer.Interval())
	defer ticker.Stop()

	h.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.handle(ev) {
				return nil
			}
		case <-ticker.C:
			steps := h.timer.Advance()
			if h.paused {
				steps = 0
			}
			if h.tickOnce {
				steps = max(steps, 1)
				h.tickOnce = false
			}
			for range steps {
				h.scene.Step()
			}
			h.draw()
		}
	}
}

// handle applies one input event. It returns false when the user quits.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		if y >= h.rows {
			h.scene.LeaveCursor()
			return true
		}
		h.scene.SetCursor((float64(x)+0.5)*float64(h.cellPx), (float64(y)+0.5)*2*float64(h.cellPx))
	case *tcell.EventFocus:
		if !ev.Focused {
			h.scene.LeaveCursor()
		}
	case *tcell.EventResize:
		h.screen.Sync()
		h.resize()
	}
	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		if n := h.controls.Len(); n > 0 {
			h.selected = (h.selected + 1) % n
		}
		return true
	case tcell.KeyRune:
	default:
		return true
	}
	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		h.paused = !h.paused
	case 'n':
		h.tickOnce = true
	case 'r':
		h.reset(h.seed)
	case 's':
		h.reset(time.Now().UnixNano())
	case '+', '=':
		h.controls.Adjust(h.selected, 1)
	case '-':
		h.controls.Adjust(h.selected, -1)
	}
	return true
}

func (h *Host) reset(seed int64) {
	h.seed = seed
	h.scene.Reset(seed)
	h.logger.Debug("scene reset", "seed", seed)
}

// resize fits the scene to the screen, keeping the bottom row for status.
func (h *Host) resize() {
	cols, rows := h.screen.Size()
	h.cols, h.rows = max(cols, 0), max(rows-1, 0)
	w, hgt := h.cols*h.cellPx, h.rows*2*h.cellPx
	if h.raster == nil {
		raster, err := render.NewRaster(w, hgt)
		if err != nil {
			h.logger.Debug("terminal too small", "cols", cols, "rows", rows)
			h.scene.Resize(0, 0)
			return
		}
		h.raster = raster
	} else if err := h.raster.Resize(w, hgt); err != nil {
		if !errors.Is(err, render.ErrEmptySurface) {
			h.logger.Error("resize", "err", err)
		}
		h.scene.Resize(0, 0)
		return
	}
	h.scene.Resize(w, hgt)
}

func (h *Host) draw() {
	h.screen.Clear()
	if h.raster != nil && !h.scene.Size().Empty() {
		h.scene.Draw(h.raster)
		h.cells = render.HalfBlocks(h.cells, h.raster.Image(), h.cols, h.rows)
		for y := 0; y < h.rows; y++ {
			for x := 0; x < h.cols; x++ {
				pair := h.cells[y*h.cols+x]
				h.screen.SetContent(x, y, upperHalf, nil, pairStyle(pair))
			}
		}
	}
	h.drawStatus()
	h.screen.Show()
}

func pairStyle(pair render.CellPair) tcell.Style {
	tr, tg, tb := render.Opaque(pair.Top)
	br, bg, bb := render.Opaque(pair.Bottom)
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(tr), int32(tg), int32(tb))).
		Background(tcell.NewRGBColor(int32(br), int32(bg), int32(bb)))
}

func (h *Host) drawStatus() {
	h.controls.Refresh()
	status := fmt.Sprintf(" %s", h.scene.Name())
	if h.paused {
		status += " [paused]"
	}
	if h.selected < h.controls.Len() {
		value, _ := h.controls.Value(h.selected)
		status += fmt.Sprintf("  %s: %s  (tab, +/-)", h.controls.Label(h.selected), value)
	}
	status += "  q quit"
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 190, 120)).Background(tcell.NewRGBColor(20, 10, 8))
	x := 0
	for _, r := range status {
		if x >= h.cols {
			break
		}
		h.screen.SetContent(x, h.rows, r, nil, style)
		x++
	}
	for ; x < h.cols; x++ {
		h.screen.SetContent(x, h.rows, ' ', nil, style)
	}
}
