package dataset

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rostercast/pkg/config"
	"github.com/wonny/rostercast/pkg/database"
)

func testRepository(t *testing.T) *Repository {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" || testing.Short() {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := database.New(ctx, &config.Config{Database: config.DatabaseConfig{URL: url, MaxConns: 2, MinConns: 1}})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	repo := NewRepository(db.Pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()
	const season = "1995-96-test"

	rows := sample(t).Players()
	require.NoError(t, repo.SaveSeason(ctx, season, rows))

	// saving again replaces instead of duplicating
	require.NoError(t, repo.SaveSeason(ctx, season, rows[:3]))

	got, err := repo.LoadSeason(ctx, season)
	require.NoError(t, err)
	assert.Equal(t, rows[:3], got)

	seasons, err := repo.Seasons(ctx)
	require.NoError(t, err)
	assert.Contains(t, seasons, season)

	d, err := NewRepositorySource(repo, season).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())
}
