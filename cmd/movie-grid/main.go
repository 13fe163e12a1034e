// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the movie-grid CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/movie-grid/internal/config"
	"github.com/pdiddy/movie-grid/internal/logging"
	"github.com/pdiddy/movie-grid/internal/secrets"
	"github.com/pdiddy/movie-grid/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the movie-grid CLI.
var rootCmd = &cobra.Command{
	Use:   "movie-grid",
	Short: "Browse OMDb search results in a filterable data grid",
	Long: `movie-grid fetches a fixed-size set of OMDb search results and presents
them in a paginated, sortable data grid with a title search.

serve runs the web page; fetch runs one acquisition and prints the results,
optionally filtered by title and exported to YAML, JSON, or SQLite.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, nil)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			names := s.Names()
			sort.Strings(names)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", names)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults(viper.GetViper())

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./movie-grid.yaml or ~/.config/movie-grid/config.yaml)")
	pf.String("secrets-dir", secrets.DefaultDir, "directory of secret files (omdb-api-key)")
	pf.String("keyword", config.DefaultKeyword, "OMDb search keyword")
	pf.Int("target", config.DefaultTargetRecords, "number of records to acquire")
	pf.Duration("timeout", config.DefaultTimeout, "per-request HTTP timeout")
	pf.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.Bool("log-dev", false, "human-readable development logging")

	bindFlag("source.keyword", pf.Lookup("keyword"))
	bindFlag("source.target_records", pf.Lookup("target"))
	bindFlag("source.timeout", pf.Lookup("timeout"))
	bindFlag("log.level", pf.Lookup("log-level"))
	bindFlag("log.development", pf.Lookup("log-dev"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("movie-grid")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "movie-grid"))
		}
	}

	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadRuntime decodes the merged configuration and builds the logger.
func loadRuntime() (types.Config, *zap.Logger, error) {
	cfg, err := config.Load(viper.GetViper(), loadedSecrets)
	if err != nil {
		return types.Config{}, nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return types.Config{}, nil, err
	}
	return cfg, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
