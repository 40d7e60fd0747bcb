package cli

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"molten-core/internal/app"
	"molten-core/internal/term"
)

func newTermCmd(cfg *app.Config) *cobra.Command {
	var cellPixels int
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Animate in the terminal with half-block glyphs",
		Long: `Animate in the terminal. The scene is sized to the terminal, each
character cell showing two square pixels of --cell-pixels scene pixels.

Keys: q/esc quit, space pause, n single step, r reset, s new seed,
tab select parameter, +/- adjust it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			scene, _, err := buildScene(ctx, cfg)
			if err != nil {
				return err
			}
			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init terminal: %w", err)
			}
			defer screen.Fini()

			host := term.New(screen, scene, term.Options{
				TPS:        cfg.TPS,
				CellPixels: cellPixels,
				Logger:     loggerFromContext(ctx),
			})
			return host.Run(ctx)
		},
	}
	cmd.Flags().IntVar(&cellPixels, "cell-pixels", 6, "scene pixels per half-cell")
	return cmd
}
