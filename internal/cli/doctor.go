package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDoctorCmd returns a health-check command validating config and environment.
func NewDoctorCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration and environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config OK. Model: %s, context window: %d\n", cfg.Model.ID, cfg.Model.ContextWindow)
			fmt.Fprintf(out, "Latency simulation: %v, metrics: %v\n", cfg.Latency.Enabled, cfg.Server.MetricsEnabled)
			fmt.Fprintf(out, "Agent: %s, transport: %s\n", cfg.Agent.Name, cfg.Server.Transport)
			return nil
		},
	}
}
