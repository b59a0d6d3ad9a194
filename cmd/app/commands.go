package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "astro-prediction",
		Short:         "Vedic astrology forecast API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringP("config", "c", "", "path to the YAML configuration file (default: configs/config.yaml)")
	root.AddCommand(newServeCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}
}

// runServe is also the root command's default so the binary starts the API
// with no arguments.
func runServe(cmd *cobra.Command, _ []string) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := os.Setenv("CONFIG_PATH", path); err != nil {
			return fmt.Errorf("set config path: %w", err)
		}
	}
	app, err := initializeApp(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	return app.Run(cmd.Context())
}
