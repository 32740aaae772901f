package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/rostercast/internal/contracts"
)

// Repository stores season datasets in PostgreSQL
// ⭐ SSOT: player_seasons table access lives here only
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new dataset repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the player_seasons table when missing
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS player_seasons (
			season     TEXT NOT NULL,
			name       TEXT NOT NULL,
			ortg       DOUBLE PRECISION NOT NULL,
			drtg       DOUBLE PRECISION NOT NULL,
			mpg        DOUBLE PRECISION NOT NULL,
			gp         DOUBLE PRECISION NOT NULL,
			pos        DOUBLE PRECISION NOT NULL,
			pace       DOUBLE PRECISION NOT NULL,
			reb_pct    DOUBLE PRECISION NOT NULL,
			tov        DOUBLE PRECISION NOT NULL,
			ft         DOUBLE PRECISION NOT NULL,
			fga        DOUBLE PRECISION NOT NULL,
			efg        DOUBLE PRECISION NOT NULL,
			ordinal    INTEGER NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (season, name)
		)
	`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create player_seasons: %w", err)
	}
	return nil
}

// SaveSeason replaces a season's rows in one transaction
func (r *Repository) SaveSeason(ctx context.Context, season string, players []contracts.PlayerSeason) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM player_seasons WHERE season = $1`, season); err != nil {
		return fmt.Errorf("clear season %s: %w", season, err)
	}

	query := `
		INSERT INTO player_seasons (season, name, ortg, drtg, mpg, gp, pos, pace, reb_pct, tov, ft, fga, efg, ordinal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (season, name) DO NOTHING
	`

	batch := &pgx.Batch{}
	for i, p := range players {
		batch.Queue(query, season, p.Name, p.ORtg, p.DRtg, p.MPG, p.GP, p.Pos, p.Pace,
			p.RebPct, p.TOV, p.FT, p.FGA, p.EFG, i)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert season %s: %w", season, err)
	}

	return tx.Commit(ctx)
}

// LoadSeason returns a season's rows in insertion order
func (r *Repository) LoadSeason(ctx context.Context, season string) ([]contracts.PlayerSeason, error) {
	query := `
		SELECT name, ortg, drtg, mpg, gp, pos, pace, reb_pct, tov, ft, fga, efg
		FROM player_seasons
		WHERE season = $1
		ORDER BY ordinal ASC
	`

	rows, err := r.pool.Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("query season %s: %w", season, err)
	}
	defer rows.Close()

	var players []contracts.PlayerSeason
	for rows.Next() {
		var p contracts.PlayerSeason
		if err := rows.Scan(&p.Name, &p.ORtg, &p.DRtg, &p.MPG, &p.GP, &p.Pos, &p.Pace,
			&p.RebPct, &p.TOV, &p.FT, &p.FGA, &p.EFG); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// Seasons lists stored seasons, newest label first
func (r *Repository) Seasons(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT season FROM player_seasons ORDER BY season DESC`)
	if err != nil {
		return nil, fmt.Errorf("query seasons: %w", err)
	}
	defer rows.Close()

	var seasons []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}
