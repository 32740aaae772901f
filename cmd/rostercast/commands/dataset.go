package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/rostercast/internal/contracts"
	"github.com/wonny/rostercast/internal/dataset"
	"github.com/wonny/rostercast/internal/ingest"
	"github.com/wonny/rostercast/pkg/config"
	"github.com/wonny/rostercast/pkg/database"
	"github.com/wonny/rostercast/pkg/logger"
	"github.com/wonny/rostercast/pkg/redis"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Build, import and inspect season datasets",
	Long: `Season dataset tools.

Subcommands:
  fetch        - build the dataset from the stats API
  import-html  - build the dataset from a saved HTML stats table
  sync-db      - copy a dataset file into PostgreSQL
  seasons      - list seasons stored in PostgreSQL
  search       - search player names in the active dataset`,
}

var datasetFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch a season from the stats API and write the dataset",
	Long: `Fetches estimated metrics and box score totals for a season, joins them by
player id and writes the dataset file (and optionally PostgreSQL).

Example:
  go run ./cmd/rostercast dataset fetch --season 2024-25 --out data/player_data.json
  go run ./cmd/rostercast dataset fetch --season 2023-24 --db`,
	RunE: runDatasetFetch,
}

var datasetImportHTMLCmd = &cobra.Command{
	Use:   "import-html <file>",
	Short: "Build the dataset from an HTML stats table",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetImportHTML,
}

var datasetSyncDBCmd = &cobra.Command{
	Use:   "sync-db",
	Short: "Store the dataset file in PostgreSQL",
	RunE:  runDatasetSyncDB,
}

var datasetSeasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "List seasons stored in PostgreSQL",
	RunE:  runDatasetSeasons,
}

var datasetSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search player names in the active dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetSearch,
}

var (
	datasetOut  string
	datasetToDB bool
	searchLimit int
)

func init() {
	rootCmd.AddCommand(datasetCmd)
	datasetCmd.AddCommand(datasetFetchCmd, datasetImportHTMLCmd, datasetSyncDBCmd, datasetSeasonsCmd, datasetSearchCmd)

	for _, c := range []*cobra.Command{datasetFetchCmd, datasetImportHTMLCmd} {
		c.Flags().StringVar(&datasetOut, "out", "", "output file (default DATASET_PATH)")
		c.Flags().BoolVar(&datasetToDB, "db", false, "also store the season in PostgreSQL")
	}
	datasetSearchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum results")
}

func runDatasetFetch(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	start := time.Now()

	rc, err := redis.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer rc.Close()

	rows, err := newStatsClient(cfg, log, rc).FetchSeason(ctx, cfg.Dataset.Season)
	if err != nil {
		return err
	}

	if err := persistRows(cmd, cfg, log, rows); err != nil {
		return err
	}

	PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Fetched %d players for %s in %.2fs",
		len(rows), cfg.Dataset.Season, time.Since(start).Seconds()))
	return nil
}

func runDatasetImportHTML(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	table, err := ingest.ParseHTML(f)
	if err != nil {
		return err
	}

	rows, err := ingest.Join(table, table)
	if err != nil {
		return err
	}

	if err := persistRows(cmd, cfg, log, rows); err != nil {
		return err
	}

	PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Imported %d players from %s", len(rows), args[0]))
	return nil
}

// persistRows validates rows as a dataset, writes the file and optionally the DB
func persistRows(cmd *cobra.Command, cfg *config.Config, log *logger.Logger, rows []contracts.PlayerSeason) error {
	if _, err := dataset.New(cfg.Dataset.Season, rows); err != nil {
		return err
	}

	out := datasetOut
	if out == "" {
		out = cfg.Dataset.Path
	}
	if err := ingest.WriteJSON(out, rows); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"path":    out,
		"players": len(rows),
	}).Info("Dataset written")

	if datasetToDB {
		return saveSeason(cmd.Context(), cfg, rows)
	}
	return nil
}

func saveSeason(ctx context.Context, cfg *config.Config, rows []contracts.PlayerSeason) error {
	db, err := database.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	repo := dataset.NewRepository(db.Pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	return repo.SaveSeason(ctx, cfg.Dataset.Season, rows)
}

func runDatasetSyncDB(cmd *cobra.Command, args []string) error {
	cfg, _, err := bootstrap()
	if err != nil {
		return err
	}

	d, err := dataset.Load(cfg.Dataset.Path, cfg.Dataset.Season)
	if err != nil {
		return err
	}

	if err := saveSeason(cmd.Context(), cfg, d.Players()); err != nil {
		return err
	}

	PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Stored %d players for %s", d.Len(), d.Season()))
	return nil
}

func runDatasetSeasons(cmd *cobra.Command, args []string) error {
	cfg, _, err := bootstrap()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	db, err := database.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	seasons, err := dataset.NewRepository(db.Pool).Seasons(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(seasons) == 0 {
		PrintWarning(out, "no seasons stored")
		return nil
	}
	PrintNumberedList(out, seasons)
	return nil
}

func runDatasetSearch(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	store, cleanup, err := openStore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	d, err := store.Current()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	players := d.Search(args[0], searchLimit)
	if len(players) == 0 {
		PrintWarning(out, fmt.Sprintf("no players match %q", args[0]))
		return nil
	}

	rows := make([][]string, len(players))
	for i, p := range players {
		rows[i] = []string{
			p.Name,
			strconv.FormatFloat(p.GP, 'f', 0, 64),
			FormatRating(p.ORtg),
			FormatRating(p.DRtg),
			FormatRating(p.MPG),
		}
	}
	PrintTable(out, []string{"Player", "GP", "ORtg", "DRtg", "MPG"}, rows)
	return nil
}
