package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"molten-core/internal/app"
)

func newWindowCmd(cfg *app.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Open the animation in a window",
		Long: `Open the animation in an ebiten window.

Keys: q/esc quit, space pause, n single step, r reset, s new seed,
h toggle the parameter panel, 1 flow field arrows, 2 noise heatmap.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			scene, _, err := buildScene(ctx, cfg)
			if err != nil {
				return err
			}
			err = app.Run(scene, cfg, loggerFromContext(ctx))
			if errors.Is(err, app.ErrNoGUI) {
				return fmt.Errorf("%w; rebuild with -tags ebiten or use 'molten term'", err)
			}
			return err
		},
	}
}
