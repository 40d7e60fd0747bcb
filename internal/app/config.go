package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"molten-core/internal/core"
	"molten-core/internal/sims/molten"
)

// Low-power modes accepted by --low-power and [scene] low_power.
const (
	LowPowerAuto = "auto"
	LowPowerOn   = "on"
	LowPowerOff  = "off"
)

// HUDWidth is the width of the parameter panel in window pixels.
const HUDWidth = 240

var (
	// ErrUnknownPreset is returned when the configured preset is not registered.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrBadConfig is returned for values that fail validation.
	ErrBadConfig = errors.New("invalid configuration")
	// ErrNoGUI is returned by Run in builds without the ebiten tag.
	ErrNoGUI = errors.New("window host requires building with the 'ebiten' tag")
)

// Config represents the runtime parameters shared by every host.
type Config struct {
	Preset   string
	Seed     int64
	Width    int
	Height   int
	LowPower string
	Params   map[string]string

	Scale int
	TPS   int
	HUD   bool

	Server ServerConfig
}

// ServerConfig holds the preview server settings.
type ServerConfig struct {
	Addr       string
	Cache      string
	RedisAddr  string
	TTL        time.Duration
	MaxEntries int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Preset:   molten.DefaultPreset,
		Seed:     1337,
		Width:    800,
		Height:   600,
		LowPower: LowPowerAuto,
		Params:   map[string]string{},
		Scale:    1,
		TPS:      60,
		HUD:      true,
		Server: ServerConfig{
			Addr:       ":8080",
			Cache:      "memory",
			RedisAddr:  "localhost:6379",
			TTL:        10 * time.Minute,
			MaxEntries: 256,
		},
	}
}

// Bind attaches the scene and window settings to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Preset, "preset", c.Preset, "scene preset to run")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for scene reset")
	fs.IntVar(&c.Width, "width", c.Width, "viewport width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "viewport height in pixels")
	fs.StringVar(&c.LowPower, "low-power", c.LowPower, "reduce entity counts: auto, on or off")
	fs.StringToStringVar(&c.Params, "set", c.Params, "scene parameter key=value (repeatable)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "show the parameter panel")
}

// BindServer attaches the preview server settings to the provided FlagSet.
func (c *Config) BindServer(fs *pflag.FlagSet) {
	fs.StringVar(&c.Server.Addr, "addr", c.Server.Addr, "listen address")
	fs.StringVar(&c.Server.Cache, "cache", c.Server.Cache, "frame cache: memory, redis or none")
	fs.StringVar(&c.Server.RedisAddr, "redis-addr", c.Server.RedisAddr, "redis address for --cache redis")
	fs.DurationVar(&c.Server.TTL, "ttl", c.Server.TTL, "frame cache ttl")
	fs.IntVar(&c.Server.MaxEntries, "cache-entries", c.Server.MaxEntries, "in-memory cache capacity")
}

type fileConfig struct {
	Scene struct {
		Preset   *string `toml:"preset"`
		Seed     *int64  `toml:"seed"`
		Width    *int    `toml:"width"`
		Height   *int    `toml:"height"`
		LowPower *string `toml:"low_power"`
	} `toml:"scene"`
	Params map[string]any `toml:"params"`
	Window struct {
		Scale *int  `toml:"scale"`
		TPS   *int  `toml:"tps"`
		HUD   *bool `toml:"hud"`
	} `toml:"window"`
	Server struct {
		Addr       *string `toml:"addr"`
		Cache      *string `toml:"cache"`
		RedisAddr  *string `toml:"redis_addr"`
		TTL        *string `toml:"ttl"`
		MaxEntries *int    `toml:"max_entries"`
	} `toml:"server"`
}

// LoadFile merges a TOML config file into c. Values whose flag was set
// explicitly on fs win over the file. It returns the file keys that were
// not recognised.
func (c *Config) LoadFile(path string, fs *pflag.FlagSet) ([]string, error) {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	fromFile(fs, "preset", fc.Scene.Preset, &c.Preset)
	fromFile(fs, "seed", fc.Scene.Seed, &c.Seed)
	fromFile(fs, "width", fc.Scene.Width, &c.Width)
	fromFile(fs, "height", fc.Scene.Height, &c.Height)
	fromFile(fs, "low-power", fc.Scene.LowPower, &c.LowPower)
	fromFile(fs, "scale", fc.Window.Scale, &c.Scale)
	fromFile(fs, "tps", fc.Window.TPS, &c.TPS)
	fromFile(fs, "hud", fc.Window.HUD, &c.HUD)
	fromFile(fs, "addr", fc.Server.Addr, &c.Server.Addr)
	fromFile(fs, "cache", fc.Server.Cache, &c.Server.Cache)
	fromFile(fs, "redis-addr", fc.Server.RedisAddr, &c.Server.RedisAddr)
	fromFile(fs, "cache-entries", fc.Server.MaxEntries, &c.Server.MaxEntries)
	if fc.Server.TTL != nil && !changed(fs, "ttl") {
		ttl, err := time.ParseDuration(*fc.Server.TTL)
		if err != nil {
			return nil, fmt.Errorf("load config %s: server.ttl: %w", path, err)
		}
		c.Server.TTL = ttl
	}

	if c.Params == nil {
		c.Params = map[string]string{}
	}
	for k, v := range fc.Params {
		if _, set := c.Params[k]; set {
			continue
		}
		c.Params[k] = fmt.Sprint(v)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	sort.Strings(unknown)
	return unknown, nil
}

func fromFile[T any](fs *pflag.FlagSet, flag string, v *T, dst *T) {
	if v == nil || changed(fs, flag) {
		return
	}
	*dst = *v
}

func changed(fs *pflag.FlagSet, name string) bool {
	return fs != nil && fs.Changed(name)
}

// Validate reports the first setting a host cannot run with.
func (c *Config) Validate() error {
	switch c.LowPower {
	case LowPowerAuto, LowPowerOn, LowPowerOff:
	default:
		return fmt.Errorf("%w: low power mode %q", ErrBadConfig, c.LowPower)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrBadConfig, c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale %d", ErrBadConfig, c.Scale)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrBadConfig, c.TPS)
	}
	return nil
}

// Prober reports the capabilities of the host machine.
type Prober func(ctx context.Context) (core.Capability, error)

// ResolveLowPower decides whether entity counts are reduced. In auto mode
// the probe decides; a failed probe means full counts and the probe error
// is returned alongside for logging.
func (c *Config) ResolveLowPower(ctx context.Context, probe Prober) (bool, error) {
	switch c.LowPower {
	case LowPowerOn:
		return true, nil
	case LowPowerOff:
		return false, nil
	}
	if probe == nil {
		return false, nil
	}
	capability, err := probe(ctx)
	return capability.LowPower, err
}

// SceneOptions merges the scene settings and parameter overrides into the
// map a scene factory consumes.
func (c *Config) SceneOptions(lowPower bool) map[string]string {
	opts := make(map[string]string, len(c.Params)+4)
	for k, v := range c.Params {
		opts[k] = v
	}
	opts["w"] = strconv.Itoa(c.Width)
	opts["h"] = strconv.Itoa(c.Height)
	opts["seed"] = strconv.FormatInt(c.Seed, 10)
	opts["low_power"] = strconv.FormatBool(lowPower)
	return opts
}

// Rejected lists parameter overrides the scene ignored.
func (c *Config) Rejected() []string {
	return molten.Rejected(c.Params)
}

// NewScene builds the configured preset through the scene registry.
func (c *Config) NewScene(lowPower bool) (core.Scene, error) {
	factory, ok := core.Scenes()[c.Preset]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownPreset, c.Preset, core.SceneNames())
	}
	return factory(c.SceneOptions(lowPower)), nil
}
