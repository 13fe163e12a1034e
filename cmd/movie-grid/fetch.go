// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/movie-grid/internal/acquire"
	"github.com/pdiddy/movie-grid/internal/export"
	"github.com/pdiddy/movie-grid/internal/filter"
	"github.com/pdiddy/movie-grid/internal/omdb"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Acquire OMDb search results and print them",
	Long: `Fetch runs one acquisition against OMDb and prints the kept records as a
table (or JSON with --json). --query applies the title search to the
acquired set. --export writes the printed rows to a file.

A page that fails halts acquisition; the records acquired before it are still
printed and the reason is reported on stderr. Use --strict to exit non-zero
in that case.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("query", "", "case-insensitive title substring to filter by")
	fetchCmd.Flags().Bool("json", false, "output results as JSON")
	fetchCmd.Flags().String("export", "", "write the results to this file")
	fetchCmd.Flags().String("format", string(export.FormatYAML), "export format: yaml, json, or sqlite")
	fetchCmd.Flags().Bool("strict", false, "exit non-zero when acquisition stops early")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	jsonOut, _ := cmd.Flags().GetBool("json")
	exportPath, _ := cmd.Flags().GetString("export")
	formatFlag, _ := cmd.Flags().GetString("format")
	strict, _ := cmd.Flags().GetBool("strict")

	var format export.Format
	if exportPath != "" {
		f, err := export.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		format = f
	}

	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := &acquire.Pipeline{
		Fetcher: omdb.NewClient(cfg.Source, logger),
		Logger:  logger,
	}
	res := p.Run(ctx, cfg.Source)

	rows := filter.ByTitle(res.Movies, query)

	if jsonOut {
		if err := acquire.FormatJSON(rows, os.Stdout); err != nil {
			return err
		}
	} else {
		acquire.FormatTable(rows, os.Stdout)
	}
	// The summary carries the halt reason, if any.
	acquire.FormatSummary(res, os.Stderr)

	if exportPath != "" {
		if err := export.Write(ctx, exportPath, format, rows); err != nil {
			return fmt.Errorf("exporting results: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d record(s) to %s (%s)\n", len(rows), exportPath, format)
	}

	if res.Err != nil && strict {
		return fmt.Errorf("acquisition incomplete: %w", res.Err)
	}
	return nil
}
