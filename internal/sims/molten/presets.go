package molten

import (
	"sort"

	"molten-core/internal/core"
)

// DefaultPreset is the scene shown when no preset is named.
const DefaultPreset = "molten"

var presets = map[string]func() Config{
	"molten": DefaultConfig,
	"embers": func() Config {
		c := DefaultConfig()
		c.Params.Blobs = 0
		c.Params.FlowNodes = 0
		c.Params.Cracks = 0
		c.Params.Shimmers = 0
		c.Params.Embers = 120
		return c
	},
	"calm": func() Config {
		c := DefaultConfig()
		c.Params.Cracks = 0
		c.Params.Embers = 30
		c.Params.BlobDrift = 0.03
		c.Params.BlobMaxSpeed = 1
		c.Params.FlowSpeed = 0.5
		c.Params.TimeScale = 0.002
		c.Params.ShimmerSpeed = 0.2
		return c
	},
}

// Preset returns the base configuration of the named preset.
func Preset(name string) (Config, bool) {
	f, ok := presets[name]
	if !ok {
		return Config{}, false
	}
	return f(), true
}

// Presets lists preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewPreset builds the named preset with cfg applied on top.
func NewPreset(name string, cfg map[string]string) (*Animator, bool) {
	base, ok := Preset(name)
	if !ok {
		return nil, false
	}
	a := NewWithConfig(ApplyMap(base, cfg))
	a.name = name
	return a, true
}

func init() {
	for name := range presets {
		core.Register(name, func(cfg map[string]string) core.Scene {
			a, _ := NewPreset(name, cfg)
			return a
		})
	}
}
