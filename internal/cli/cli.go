// Package cli implements the molten command-line interface.
//
// Every subcommand builds the same scene from the shared scene flags and
// an optional TOML file given with --config:
//   - window: ebiten window with the parameter HUD
//   - term: half-block rendering in the terminal
//   - render: headless PNG sequences or an animated GIF
//   - serve: HTTP preview server with a frame cache
//   - params: the parameter snapshot of a preset
//   - probe: the host capability check behind --low-power auto
//
// All commands accept --verbose (-v) for debug logging. The logger travels
// in the command context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"molten-core/internal/app"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the molten CLI until ctx is done or the command returns.
func Execute(ctx context.Context) error {
	root := newRootCmd(os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(root.ErrOrStderr(), "%v", err)
		return err
	}
	return nil
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
	)
	cfg := app.NewConfig()

	root := &cobra.Command{
		Use:           "molten",
		Short:         "molten animates a procedural noise field of glowing molten rock",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(logOut, level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			if configPath != "" {
				unknown, err := cfg.LoadFile(configPath, cmd.Flags())
				if err != nil {
					return err
				}
				for _, key := range unknown {
					logger.Warn("unknown config key", "key", key, "file", configPath)
				}
				logger.Debug("loaded config", "file", configPath)
			}
			return cfg.Validate()
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("molten %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file")
	cfg.Bind(root.PersistentFlags())

	root.AddCommand(newWindowCmd(cfg))
	root.AddCommand(newTermCmd(cfg))
	root.AddCommand(newRenderCmd(cfg))
	root.AddCommand(newServeCmd(cfg))
	root.AddCommand(newParamsCmd(cfg))
	root.AddCommand(newProbeCmd())
	return root
}
