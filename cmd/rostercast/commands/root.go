package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/rostercast/pkg/config"
	"github.com/wonny/rostercast/pkg/logger"
)

var (
	// Global flags
	datasetPath string
	season      string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rostercast",
	Short: "Project a season record for hypothetical NBA rosters",
	Long: `rostercast builds hypothetical NBA rosters from per-player season data
and projects ratings and an 82 game record for the team.

Usage:
  go run ./cmd/rostercast [command]

Examples:
  go run ./cmd/rostercast project "Stephen Curry" "Klay Thompson" ...
  go run ./cmd/rostercast project --roster roster.yaml
  go run ./cmd/rostercast dataset fetch --season 2024-25
  go run ./cmd/rostercast api --port 8080`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "dataset file (overrides DATASET_PATH)")
	rootCmd.PersistentFlags().StringVar(&season, "season", "", "season label, e.g. 2024-25 (overrides DATASET_SEASON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// bootstrap loads config, applies global flag overrides and builds the logger
func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if datasetPath != "" {
		cfg.Dataset.Path = datasetPath
		cfg.Dataset.Source = config.DatasetSourceFile
	}
	if season != "" {
		cfg.Dataset.Season = season
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, logger.New(cfg), nil
}
