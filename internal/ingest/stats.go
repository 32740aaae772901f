package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wonny/rostercast/internal/contracts"
	"github.com/wonny/rostercast/pkg/httputil"
)

// ErrMalformedTable is returned when a result set lacks a required column
var ErrMalformedTable = errors.New("malformed stats table")

const (
	endpointEstimatedMetrics = "/playerestimatedmetrics"
	endpointPlayerStats      = "/leaguedashplayerstats"
)

// statsResponse covers both the plural and singular result set envelopes
type statsResponse struct {
	ResultSets []Table `json:"resultSets"`
	ResultSet  *Table  `json:"resultSet"`
}

func (r *statsResponse) first() (*Table, error) {
	if len(r.ResultSets) > 0 {
		return &r.ResultSets[0], nil
	}
	if r.ResultSet != nil {
		return r.ResultSet, nil
	}
	return nil, fmt.Errorf("%w: no result sets", ErrMalformedTable)
}

// StatsClient fetches season tables from the stats API
// ⭐ SSOT: upstream stats API calls live here only
type StatsClient struct {
	http    *httputil.Client
	baseURL string
	logger  zerolog.Logger
}

// NewStatsClient creates a stats API client. The http client should already
// carry the rate limiter and browser headers the upstream expects.
func NewStatsClient(httpClient *httputil.Client, baseURL string, logger zerolog.Logger) *StatsClient {
	return &StatsClient{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With().Str("component", "ingest.stats").Logger(),
	}
}

func (c *StatsClient) fetchTable(ctx context.Context, endpoint string, params url.Values) (*Table, error) {
	u := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	var resp statsResponse
	if err := c.http.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}

	t, err := resp.first()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("rows", len(t.Rows)).
		Msg("Fetched stats table")
	return t, nil
}

// FetchSeason builds one dataset row per player for a season ("2024-25")
func (c *StatsClient) FetchSeason(ctx context.Context, season string) ([]contracts.PlayerSeason, error) {
	metrics, err := c.fetchTable(ctx, endpointEstimatedMetrics, url.Values{
		"LeagueID":   {"00"},
		"Season":     {season},
		"SeasonType": {"Regular Season"},
	})
	if err != nil {
		return nil, err
	}

	box, err := c.fetchTable(ctx, endpointPlayerStats, url.Values{
		"LeagueID":    {"00"},
		"Season":      {season},
		"SeasonType":  {"Regular Season"},
		"PerMode":     {"Totals"},
		"MeasureType": {"Base"},
	})
	if err != nil {
		return nil, err
	}

	rows, err := Join(metrics, box)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("season", season).
		Int("players", len(rows)).
		Msg("Season fetched")
	return rows, nil
}
