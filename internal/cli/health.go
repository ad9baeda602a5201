package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/quarto/internal/api/response"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the game host is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var health response.Health
			if err := client.Get(cmd.Context(), "/api/v1/health", &health); err != nil {
				return fmt.Errorf("host at %s is not reachable: %w", cfg.ServerURL, err)
			}
			NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr()).Print(health)
			return nil
		},
	}
}
