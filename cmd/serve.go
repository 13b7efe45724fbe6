// Package cmd — serve command.
// Runs the HTTP API and the bundled frontend until SIGINT or SIGTERM.
package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/reelpipe/core/extract"
	"github.com/gaurav-prasanna/reelpipe/core/fetch"
	"github.com/gaurav-prasanna/reelpipe/core/pipeline"
	"github.com/gaurav-prasanna/reelpipe/server"
)

var (
	flagPort      string
	flagPublicDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extraction API and frontend",
	Long: `Serve starts the HTTP server exposing POST /api/extract and the static
frontend. Settings come from the environment (PORT, PUBLIC_DIR, ...); flags
override them.

Examples:
  reelpipe serve
  reelpipe serve --port 8080 --public_dir ./web`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&flagPort, "port", "", "Listen port (default: $PORT or 3000)")
	serveCmd.Flags().StringVar(&flagPublicDir, "public_dir", "", "Static files directory (default: $PUBLIC_DIR or public)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if flagPort != "" {
		cfg.Port = flagPort
	}
	if flagPublicDir != "" {
		cfg.PublicDir = flagPublicDir
	}

	fetcher, err := fetch.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initializing fetcher: %w", err)
	}
	p := pipeline.New(fetcher, extract.New())

	srv := server.New(server.Config{
		Addr:         cfg.Addr(),
		PublicDir:    cfg.PublicDir,
		AllowOrigins: cfg.AllowOrigins,
	}, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Start(logger.WithContext(ctx))
}
