// Package cmd implements the reelpipe CLI using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/reelpipe/config"
	"github.com/gaurav-prasanna/reelpipe/logging"
	"github.com/gaurav-prasanna/reelpipe/tr"
)

// Process-wide state prepared before any subcommand runs.
var (
	cfg             config.Config
	logger          = zerolog.Nop()
	shutdownTracing = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "reelpipe",
	Short: "reelpipe — pull the video, caption and hashtags out of Instagram reels",
	Long: `reelpipe fetches a public Instagram reel or post page and extracts the
direct video URL, caption, author and hashtags.

Usage:
  reelpipe serve [flags]
  reelpipe extract <url> [flags]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if logger, err = logging.Stderr(cfg.LogLevel, cfg.LogFormat); err != nil {
			return err
		}
		if shutdownTracing, err = tr.Init(cfg.ServiceName); err != nil {
			return fmt.Errorf("initializing tracing: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		shutdownTracing()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
