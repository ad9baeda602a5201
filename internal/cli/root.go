package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "quarto",
		Short: "Play and host games of Quarto",
		Long: `quarto runs hot-seat Quarto games in the terminal, serves the game host
over HTTP, and talks to a running server through its JSON API.

Pieces are written as four-letter codes, one letter per attribute:
  W/N  wide or narrow
  S/R  square or round
  L/D  light or dark
  F/H  filled (solid) or hollow`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: QUARTO_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: QUARTO_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log engine activity to stderr")

	// Local commands
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newPiecesCmd())
	rootCmd.AddCommand(newServeCmd())

	// Remote commands
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
