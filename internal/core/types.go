package core

import (
	"sort"

	"molten-core/internal/render"
)

// Size describes the dimensions of a scene viewport in pixels.
type Size struct {
	W int
	H int
}

// Empty reports whether the viewport has no drawable area.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Cursor is the last known pointer position. Active stays false until the
// pointer first moves over the surface and drops back when it leaves.
type Cursor struct {
	X, Y   float64
	Active bool
}

// Scene is the contract every animated background implements. Input and
// resize calls happen between frames on the same goroutine as Step and Draw.
type Scene interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Resize(w, h int)
	SetCursor(x, y float64)
	LeaveCursor()
	Draw(dst render.Surface)
}

// Factory constructs a Scene using an optional configuration map.
type Factory func(cfg map[string]string) Scene

var scenes = map[string]Factory{}

// Register adds a scene factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	scenes[name] = f
}

// Scenes exposes the registry of available scene factories.
func Scenes() map[string]Factory {
	return scenes
}

// SceneNames lists registered scene names in sorted order.
func SceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
