package molten

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"molten-core/internal/core"
	"molten-core/pkg/noise"
)

// Params holds every tunable of the molten scene. Entity counts are read
// when the scene is built or reset; everything else is read each frame.
type Params struct {
	Blobs     int
	FlowNodes int
	Cracks    int
	Embers    int
	Shimmers  int

	Noise      noise.Kind
	Octaves    int
	NoiseScale float64
	TimeScale  float64

	CellSize      int
	WashIntensity float64

	BlobRadiusMin float64
	BlobRadiusMax float64
	BlobDamping   float64
	BlobDrift     float64
	BlobMaxSpeed  float64
	RepelRadius   float64
	RepelForce    float64

	FlowSpeed float64
	FlowSize  float64

	CrackLifeMin   int
	CrackLifeMax   int
	CrackPointsMin int
	CrackPointsMax int
	CrackStepMin   float64
	CrackStepMax   float64
	CrackTurn      float64
	CrackDelayMax  int
	CrackWidth     float64
	CrackGlow      float64

	EmberLifeMin     int
	EmberLifeMax     int
	EmberLift        float64
	EmberSway        float64
	EmberSwayDamping float64
	EmberSizeMin     float64
	EmberSizeMax     float64
	EmberOpacityMin  float64
	EmberOpacityMax  float64
	EmberGlow        float64

	ShimmerSpeed  float64
	ShimmerDrift  float64
	ShimmerWidth  float64
	ShimmerHeight float64
	ShimmerWobble float64
	ShimmerAlpha  float64

	CursorRadius  float64
	CursorSpring  float64
	CursorDamping float64

	Vignette float64
}

// Config controls the molten scene dimensions and seeding.
type Config struct {
	Width  int
	Height int

	Seed     int64
	LowPower bool

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  800,
		Height: 600,
		Seed:   1337,
		Params: Params{
			Blobs:     9,
			FlowNodes: 24,
			Cracks:    12,
			Embers:    80,
			Shimmers:  6,

			Noise:      noise.KindGradient,
			Octaves:    noise.DefaultOctaves,
			NoiseScale: 0.0025,
			TimeScale:  0.004,

			CellSize:      40,
			WashIntensity: 0.85,

			BlobRadiusMin: 80,
			BlobRadiusMax: 220,
			BlobDamping:   0.96,
			BlobDrift:     0.06,
			BlobMaxSpeed:  2.5,
			RepelRadius:   300,
			RepelForce:    0.6,

			FlowSpeed: 1.2,
			FlowSize:  2.5,

			CrackLifeMin:   180,
			CrackLifeMax:   480,
			CrackPointsMin: 7,
			CrackPointsMax: 16,
			CrackStepMin:   12,
			CrackStepMax:   36,
			CrackTurn:      0.5,
			CrackDelayMax:  240,
			CrackWidth:     1.5,
			CrackGlow:      4,

			EmberLifeMin:     60,
			EmberLifeMax:     180,
			EmberLift:        0.02,
			EmberSway:        0.8,
			EmberSwayDamping: 0.985,
			EmberSizeMin:     0.5,
			EmberSizeMax:     2.5,
			EmberOpacityMin:  0.3,
			EmberOpacityMax:  0.8,
			EmberGlow:        3,

			ShimmerSpeed:  0.4,
			ShimmerDrift:  0.15,
			ShimmerWidth:  160,
			ShimmerHeight: 48,
			ShimmerWobble: 18,
			ShimmerAlpha:  0.12,

			CursorRadius:  180,
			CursorSpring:  6,
			CursorDamping: 1,

			Vignette: 0.7,
		},
	}
}

// Reduced returns a copy suited to low-capability hosts: at most three blobs,
// the other entity sets halved and at most three noise octaves.
func (p Params) Reduced() Params {
	r := p
	r.Blobs = min(r.Blobs, 3)
	r.FlowNodes /= 2
	r.Cracks /= 2
	r.Embers /= 2
	r.Shimmers /= 2
	r.Octaves = min(r.Octaves, 3)
	return r
}

// paramSpec binds a string key to a field of Params together with the
// bounds the setters clamp to.
type paramSpec struct {
	key   string
	label string
	group string

	intField   func(*Params) *int
	floatField func(*Params) *float64

	min, max float64
	step     float64
	live     bool
}

func (s paramSpec) kind() core.ParamType {
	if s.intField != nil {
		return core.ParamTypeInt
	}
	return core.ParamTypeFloat
}

func (s paramSpec) clamp(v float64) float64 {
	return math.Max(s.min, math.Min(s.max, v))
}

func intSpec(group, key, label string, f func(*Params) *int, lo, hi, step float64, live bool) paramSpec {
	return paramSpec{key: key, label: label, group: group, intField: f, min: lo, max: hi, step: step, live: live}
}

func floatSpec(group, key, label string, f func(*Params) *float64, lo, hi, step float64) paramSpec {
	return paramSpec{key: key, label: label, group: group, floatField: f, min: lo, max: hi, step: step, live: true}
}

var paramSpecs = []paramSpec{
	intSpec("Counts", "blobs", "Blobs", func(p *Params) *int { return &p.Blobs }, 0, 64, 1, false),
	intSpec("Counts", "flow_nodes", "Flow nodes", func(p *Params) *int { return &p.FlowNodes }, 0, 256, 4, false),
	intSpec("Counts", "cracks", "Cracks", func(p *Params) *int { return &p.Cracks }, 0, 128, 2, false),
	intSpec("Counts", "embers", "Embers", func(p *Params) *int { return &p.Embers }, 0, 1024, 10, false),
	intSpec("Counts", "shimmers", "Shimmer bands", func(p *Params) *int { return &p.Shimmers }, 0, 64, 1, false),

	intSpec("Noise", "octaves", "Octaves", func(p *Params) *int { return &p.Octaves }, 1, 8, 1, true),
	floatSpec("Noise", "noise_scale", "Noise scale", func(p *Params) *float64 { return &p.NoiseScale }, 0.0001, 0.05, 0.0005),
	floatSpec("Noise", "time_scale", "Time scale", func(p *Params) *float64 { return &p.TimeScale }, 0, 0.05, 0.001),

	intSpec("Wash", "cell_size", "Cell size", func(p *Params) *int { return &p.CellSize }, 4, 256, 4, true),
	floatSpec("Wash", "wash_intensity", "Wash intensity", func(p *Params) *float64 { return &p.WashIntensity }, 0, 1, 0.05),

	floatSpec("Blobs", "blob_radius_min", "Blob radius min", func(p *Params) *float64 { return &p.BlobRadiusMin }, 4, 800, 10),
	floatSpec("Blobs", "blob_radius_max", "Blob radius max", func(p *Params) *float64 { return &p.BlobRadiusMax }, 4, 800, 10),
	floatSpec("Blobs", "blob_damping", "Blob damping", func(p *Params) *float64 { return &p.BlobDamping }, 0, 1, 0.01),
	floatSpec("Blobs", "blob_drift", "Blob drift", func(p *Params) *float64 { return &p.BlobDrift }, 0, 2, 0.01),
	floatSpec("Blobs", "blob_max_speed", "Blob max speed", func(p *Params) *float64 { return &p.BlobMaxSpeed }, 0, 50, 0.5),
	floatSpec("Blobs", "repel_radius", "Repel radius", func(p *Params) *float64 { return &p.RepelRadius }, 0, 2000, 20),
	floatSpec("Blobs", "repel_force", "Repel force", func(p *Params) *float64 { return &p.RepelForce }, 0, 10, 0.1),

	floatSpec("Flow", "flow_speed", "Flow speed", func(p *Params) *float64 { return &p.FlowSpeed }, 0, 20, 0.1),
	floatSpec("Flow", "flow_size", "Flow node size", func(p *Params) *float64 { return &p.FlowSize }, 0.5, 20, 0.5),

	intSpec("Cracks", "crack_life_min", "Crack life min", func(p *Params) *int { return &p.CrackLifeMin }, 1, 10000, 10, true),
	intSpec("Cracks", "crack_life_max", "Crack life max", func(p *Params) *int { return &p.CrackLifeMax }, 1, 10000, 10, true),
	intSpec("Cracks", "crack_points_min", "Crack points min", func(p *Params) *int { return &p.CrackPointsMin }, 2, 64, 1, true),
	intSpec("Cracks", "crack_points_max", "Crack points max", func(p *Params) *int { return &p.CrackPointsMax }, 2, 64, 1, true),
	floatSpec("Cracks", "crack_step_min", "Crack step min", func(p *Params) *float64 { return &p.CrackStepMin }, 1, 200, 1),
	floatSpec("Cracks", "crack_step_max", "Crack step max", func(p *Params) *float64 { return &p.CrackStepMax }, 1, 200, 1),
	floatSpec("Cracks", "crack_turn", "Crack turn", func(p *Params) *float64 { return &p.CrackTurn }, 0, math.Pi, 0.05),
	intSpec("Cracks", "crack_delay_max", "Crack delay max", func(p *Params) *int { return &p.CrackDelayMax }, 0, 10000, 10, true),
	floatSpec("Cracks", "crack_width", "Crack width", func(p *Params) *float64 { return &p.CrackWidth }, 0.25, 20, 0.25),
	floatSpec("Cracks", "crack_glow", "Crack glow", func(p *Params) *float64 { return &p.CrackGlow }, 0, 30, 0.5),

	intSpec("Embers", "ember_life_min", "Ember life min", func(p *Params) *int { return &p.EmberLifeMin }, 1, 10000, 10, true),
	intSpec("Embers", "ember_life_max", "Ember life max", func(p *Params) *int { return &p.EmberLifeMax }, 1, 10000, 10, true),
	floatSpec("Embers", "ember_lift", "Ember lift", func(p *Params) *float64 { return &p.EmberLift }, 0, 1, 0.005),
	floatSpec("Embers", "ember_sway", "Ember sway", func(p *Params) *float64 { return &p.EmberSway }, 0, 10, 0.1),
	floatSpec("Embers", "ember_sway_damping", "Ember sway damping", func(p *Params) *float64 { return &p.EmberSwayDamping }, 0, 1, 0.005),
	floatSpec("Embers", "ember_size_min", "Ember size min", func(p *Params) *float64 { return &p.EmberSizeMin }, 0.1, 20, 0.1),
	floatSpec("Embers", "ember_size_max", "Ember size max", func(p *Params) *float64 { return &p.EmberSizeMax }, 0.1, 20, 0.1),
	floatSpec("Embers", "ember_opacity_min", "Ember opacity min", func(p *Params) *float64 { return &p.EmberOpacityMin }, 0, 1, 0.05),
	floatSpec("Embers", "ember_opacity_max", "Ember opacity max", func(p *Params) *float64 { return &p.EmberOpacityMax }, 0, 1, 0.05),
	floatSpec("Embers", "ember_glow", "Ember glow", func(p *Params) *float64 { return &p.EmberGlow }, 0, 30, 0.5),

	floatSpec("Shimmer", "shimmer_speed", "Shimmer speed", func(p *Params) *float64 { return &p.ShimmerSpeed }, 0, 20, 0.1),
	floatSpec("Shimmer", "shimmer_drift", "Shimmer drift", func(p *Params) *float64 { return &p.ShimmerDrift }, -20, 20, 0.05),
	floatSpec("Shimmer", "shimmer_width", "Shimmer width", func(p *Params) *float64 { return &p.ShimmerWidth }, 4, 2000, 10),
	floatSpec("Shimmer", "shimmer_height", "Shimmer height", func(p *Params) *float64 { return &p.ShimmerHeight }, 2, 1000, 4),
	floatSpec("Shimmer", "shimmer_wobble", "Shimmer wobble", func(p *Params) *float64 { return &p.ShimmerWobble }, 0, 200, 2),
	floatSpec("Shimmer", "shimmer_alpha", "Shimmer alpha", func(p *Params) *float64 { return &p.ShimmerAlpha }, 0, 1, 0.01),

	floatSpec("Cursor", "cursor_radius", "Cursor radius", func(p *Params) *float64 { return &p.CursorRadius }, 0, 2000, 10),
	floatSpec("Cursor", "cursor_spring", "Cursor spring", func(p *Params) *float64 { return &p.CursorSpring }, 0, 60, 0.5),
	floatSpec("Cursor", "cursor_damping", "Cursor damping", func(p *Params) *float64 { return &p.CursorDamping }, 0, 4, 0.1),

	floatSpec("Vignette", "vignette", "Vignette", func(p *Params) *float64 { return &p.Vignette }, 0, 1, 0.05),
}

func lookupSpec(key string) (paramSpec, bool) {
	for _, s := range paramSpecs {
		if s.key == key {
			return s, true
		}
	}
	return paramSpec{}, false
}

// set parses value for key and stores it clamped to the key's bounds.
func (p *Params) set(key, value string) bool {
	if key == "noise" {
		kind := noise.Kind(strings.ToLower(strings.TrimSpace(value)))
		if kind != noise.KindGradient && kind != noise.KindSimplex {
			return false
		}
		p.Noise = kind
		return true
	}
	spec, ok := lookupSpec(key)
	if !ok {
		return false
	}
	if spec.intField != nil {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		*spec.intField(p) = int(spec.clamp(float64(parsed)))
		return true
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return false
	}
	*spec.floatField(p) = spec.clamp(parsed)
	return true
}

// normalize restores min <= max for every paired range.
func (p *Params) normalize() {
	if p.BlobRadiusMax < p.BlobRadiusMin {
		p.BlobRadiusMax = p.BlobRadiusMin
	}
	if p.CrackLifeMax < p.CrackLifeMin {
		p.CrackLifeMax = p.CrackLifeMin
	}
	if p.CrackPointsMax < p.CrackPointsMin {
		p.CrackPointsMax = p.CrackPointsMin
	}
	if p.CrackStepMax < p.CrackStepMin {
		p.CrackStepMax = p.CrackStepMin
	}
	if p.EmberLifeMax < p.EmberLifeMin {
		p.EmberLifeMax = p.EmberLifeMin
	}
	if p.EmberSizeMax < p.EmberSizeMin {
		p.EmberSizeMax = p.EmberSizeMin
	}
	if p.EmberOpacityMax < p.EmberOpacityMin {
		p.EmberOpacityMax = p.EmberOpacityMin
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return ApplyMap(DefaultConfig(), cfg)
}

// ApplyMap overlays flag-style key/value pairs onto base. Unknown keys and
// unparsable values are ignored; see Rejected to report them.
func ApplyMap(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	for key, value := range cfg {
		switch key {
		case "w":
			if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
				c.Width = parsed
			}
		case "h":
			if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
				c.Height = parsed
			}
		case "seed":
			if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
				c.Seed = parsed
			}
		case "low_power":
			if parsed, err := strconv.ParseBool(value); err == nil {
				c.LowPower = parsed
			}
		default:
			c.Params.set(key, value)
		}
	}
	c.Params.normalize()
	return c
}

// Rejected lists, sorted, the keys of cfg that ApplyMap would ignore.
func Rejected(cfg map[string]string) []string {
	var out []string
	probe := DefaultConfig()
	for key, value := range cfg {
		switch key {
		case "w", "h":
			if parsed, err := strconv.Atoi(value); err != nil || parsed < 0 {
				out = append(out, key)
			}
		case "seed":
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				out = append(out, key)
			}
		case "low_power":
			if _, err := strconv.ParseBool(value); err != nil {
				out = append(out, key)
			}
		default:
			if !probe.Params.set(key, value) {
				out = append(out, key)
			}
		}
	}
	sort.Strings(out)
	return out
}
