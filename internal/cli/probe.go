package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Report the host capabilities used by --low-power auto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := probeCapability(ctx)
			if err != nil {
				loggerFromContext(ctx).Warn("probe incomplete", "err", err)
			}
			w := cmd.OutOrStdout()
			printTitle(w, "Host capability")
			memory := "unknown"
			if c.TotalMemory > 0 {
				memory = fmt.Sprintf("%.1f GiB", float64(c.TotalMemory)/(1<<30))
			}
			cpus := "unknown"
			if c.CPUs > 0 {
				cpus = strconv.Itoa(c.CPUs)
			}
			printField(w, "memory", memory, "")
			printField(w, "logical cpus", cpus, "")
			note := "full entity counts"
			if c.LowPower {
				note = "entity counts reduced"
			}
			printField(w, "low power", strconv.FormatBool(c.LowPower), note)
			return nil
		},
	}
}
