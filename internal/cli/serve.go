package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"molten-core/internal/app"
	"molten-core/internal/server"
	"molten-core/pkg/cache"
)

func newServeCmd(cfg *app.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered frames over HTTP",
		Long: `Serve rendered frames over HTTP.

  GET /frame.png?preset=&seed=&w=&h=&frame=   PNG of the given frame
  GET /params?preset=                         parameter snapshot as JSON
  GET /presets                                preset names
  GET /healthz                                liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			c, err := openCache(ctx, cfg.Server)
			if err != nil {
				return err
			}
			defer c.Close()
			logger.Info("frame cache", "backend", cfg.Server.Cache, "ttl", cfg.Server.TTL)

			srv := server.New(server.Options{
				Cache:    c,
				TTL:      cfg.Server.TTL,
				Logger:   logger,
				LowPower: resolveLowPower(ctx, cfg),
				Params:   cfg.Params,
			})
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}
	cfg.BindServer(cmd.Flags())
	return cmd
}

func openCache(ctx context.Context, sc app.ServerConfig) (cache.Cache, error) {
	switch sc.Cache {
	case "memory":
		return cache.NewMemoryCache(sc.MaxEntries), nil
	case "redis":
		c, err := cache.NewRedisCache(ctx, sc.RedisAddr)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "none", "":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: cache backend %q", app.ErrBadConfig, sc.Cache)
	}
}
