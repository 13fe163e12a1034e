// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/movie-grid/internal/acquire"
	"github.com/pdiddy/movie-grid/internal/grid"
	"github.com/pdiddy/movie-grid/internal/metrics"
	"github.com/pdiddy/movie-grid/internal/omdb"
	"github.com/pdiddy/movie-grid/internal/web"
	"github.com/pdiddy/movie-grid/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the movie grid web page",
	Long: `Serve starts the web page and, in the background, acquires the configured
number of OMDb search results. The grid shows no rows until acquisition
finishes; a failed page keeps whatever was acquired before it.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8080)")
	bindFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Sync()

	m := metrics.New()
	state := grid.NewState(m)

	opts, err := grid.NewOptions(cfg.Grid)
	if err != nil {
		return err
	}

	srv, err := web.NewServer(cfg.Server, state, opts, m, logger, version)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go acquireBaseline(ctx, cfg.Source, state, m, logger)

	return srv.Run(ctx)
}

// acquireBaseline runs one acquisition and publishes whatever it kept.
func acquireBaseline(ctx context.Context, cfg types.SourceConfig, state *grid.State, m *metrics.Metrics, logger *zap.Logger) {
	p := &acquire.Pipeline{
		Fetcher: omdb.NewClient(cfg, logger),
		Logger:  logger,
		Metrics: m,
	}
	res := p.Run(ctx, cfg)
	if err := state.Publish(res); err != nil {
		logger.Error("publishing baseline", zap.Error(err))
	}
}
