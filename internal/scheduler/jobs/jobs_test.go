package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rostercast/internal/contracts"
	"github.com/wonny/rostercast/internal/dataset"
	"github.com/wonny/rostercast/pkg/logger"
)

type fakeReloader struct {
	d   *dataset.Dataset
	err error
}

func (f *fakeReloader) Reload(ctx context.Context) (*dataset.Dataset, error) {
	return f.d, f.err
}

type fakeCleaner struct {
	ttl time.Duration
}

func (f *fakeCleaner) CleanIdle(ttl time.Duration) int {
	f.ttl = ttl
	return 2
}

func TestDatasetRefreshJob(t *testing.T) {
	d, err := dataset.New("2024-25", []contracts.PlayerSeason{{Name: "Tyrese Haliburton"}})
	require.NoError(t, err)

	job := NewDatasetRefreshJob(&fakeReloader{d: d}, "0 0 6 * * *", logger.Nop())
	assert.Equal(t, "dataset_refresh", job.Name())
	assert.Equal(t, "0 0 6 * * *", job.Schedule())
	assert.NoError(t, job.Run(context.Background()))

	failing := NewDatasetRefreshJob(&fakeReloader{err: errors.New("disk gone")}, "@hourly", logger.Nop())
	assert.ErrorContains(t, failing.Run(context.Background()), "disk gone")
}

func TestSessionCleanupJob(t *testing.T) {
	cleaner := &fakeCleaner{}
	job := NewSessionCleanupJob(cleaner, 30*time.Minute, "0 */5 * * * *", logger.Nop())

	assert.Equal(t, "session_cleanup", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 30*time.Minute, cleaner.ttl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, job.Run(ctx))
}
