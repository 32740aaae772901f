package commands

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/wonny/rostercast/internal/dataset"
	"github.com/wonny/rostercast/internal/ingest"
	"github.com/wonny/rostercast/pkg/config"
	"github.com/wonny/rostercast/pkg/database"
	"github.com/wonny/rostercast/pkg/httputil"
	"github.com/wonny/rostercast/pkg/logger"
	"github.com/wonny/rostercast/pkg/redis"
)

// openStore builds the dataset store for the configured source and loads it.
// The returned cleanup releases the database pool when one was opened.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*dataset.Store, func(), error) {
	var (
		source  dataset.Source
		cleanup = func() {}
	)

	switch cfg.Dataset.Source {
	case config.DatasetSourcePostgres:
		db, err := database.New(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		cleanup = db.Close
		source = dataset.NewRepositorySource(dataset.NewRepository(db.Pool), cfg.Dataset.Season)
	default:
		source = dataset.NewFileSource(cfg.Dataset.Path, cfg.Dataset.Season)
	}

	store := dataset.NewStore(source, log.Component("dataset.store"))
	if _, err := store.Reload(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("load dataset from %s: %w", source.Describe(), err)
	}
	return store, cleanup, nil
}

// newStatsClient wires the stats API client with the in-process limiter, the
// shared Redis limiter when Redis is enabled, and the headers the API expects
func newStatsClient(cfg *config.Config, log *logger.Logger, rc *redis.Client) *ingest.StatsClient {
	httpClient := httputil.New(cfg, log).
		WithLimiter(rate.NewLimiter(rate.Limit(cfg.StatsAPI.RequestsPerSecond), 1)).
		WithHeader("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36").
		WithHeader("Referer", "https://www.nba.com/").
		WithHeader("Origin", "https://www.nba.com").
		WithHeader("Accept", "application/json, text/plain, */*")

	if rc != nil && rc.Enabled() {
		httpClient = httpClient.WithRateLimiter(redis.NewRateLimiter(rc, "rostercast"), redis.StatsAPIRateLimit)
	}

	return ingest.NewStatsClient(httpClient, cfg.StatsAPI.BaseURL, log.Component("ingest.stats"))
}
