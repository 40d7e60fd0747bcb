package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"molten-core/internal/app"
	"molten-core/internal/core"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

func newParamsCmd(cfg *app.Config) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the parameters of the configured preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, _, err := buildScene(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			provider, ok := scene.(parameterProvider)
			if !ok {
				return nil
			}
			snap := provider.Parameters()
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}
			for _, group := range snap.Groups {
				printTitle(w, group.Name)
				for _, p := range group.Params {
					note := p.Description
					if group.Summary != "" && note == "" {
						note = group.Summary
					}
					printField(w, p.Key, p.Value, note)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
