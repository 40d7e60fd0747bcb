package cli

import (
	"context"

	"molten-core/internal/app"
	"molten-core/internal/core"
)

// probeCapability is swapped out in tests.
var probeCapability app.Prober = core.ProbeCapability

// resolveLowPower applies --low-power, logging a failed probe at debug
// level.
func resolveLowPower(ctx context.Context, cfg *app.Config) bool {
	logger := loggerFromContext(ctx)
	low, err := cfg.ResolveLowPower(ctx, probeCapability)
	if err != nil {
		logger.Debug("capability probe failed, using full entity counts", "err", err)
	}
	if low {
		logger.Info("low-power host, reducing entity counts", "mode", cfg.LowPower)
	}
	return low
}

// buildScene constructs the configured preset.
func buildScene(ctx context.Context, cfg *app.Config) (core.Scene, bool, error) {
	logger := loggerFromContext(ctx)
	for _, key := range cfg.Rejected() {
		logger.Debug("ignoring parameter", "key", key, "value", cfg.Params[key])
	}
	low := resolveLowPower(ctx, cfg)
	scene, err := cfg.NewScene(low)
	if err != nil {
		return nil, low, err
	}
	logger.Debug("scene ready", "preset", cfg.Preset, "seed", cfg.Seed, "w", cfg.Width, "h", cfg.Height)
	return scene, low, nil
}
