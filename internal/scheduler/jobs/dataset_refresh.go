package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/rostercast/internal/dataset"
	"github.com/wonny/rostercast/pkg/logger"
)

// Reloader swaps in a freshly loaded dataset
type Reloader interface {
	Reload(ctx context.Context) (*dataset.Dataset, error)
}

// DatasetRefreshJob reloads the active dataset from its source
type DatasetRefreshJob struct {
	store    Reloader
	schedule string
	logger   *logger.Logger
}

// NewDatasetRefreshJob creates a new dataset refresh job
func NewDatasetRefreshJob(store Reloader, schedule string, log *logger.Logger) *DatasetRefreshJob {
	return &DatasetRefreshJob{
		store:    store,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *DatasetRefreshJob) Name() string {
	return "dataset_refresh"
}

// Schedule returns the cron schedule
func (j *DatasetRefreshJob) Schedule() string {
	return j.schedule
}

// Run reloads the dataset; on failure the previous dataset stays active
func (j *DatasetRefreshJob) Run(ctx context.Context) error {
	d, err := j.store.Reload(ctx)
	if err != nil {
		return fmt.Errorf("reload dataset: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"season":  d.Season(),
		"players": d.Len(),
	}).Info("Dataset refreshed")
	return nil
}
