package jobs

import (
	"context"
	"time"

	"github.com/wonny/rostercast/pkg/logger"
)

// IdleCleaner evicts sessions idle longer than ttl
type IdleCleaner interface {
	CleanIdle(ttl time.Duration) int
}

// SessionCleanupJob evicts idle roster sessions
type SessionCleanupJob struct {
	sessions IdleCleaner
	ttl      time.Duration
	schedule string
	logger   *logger.Logger
}

// NewSessionCleanupJob creates a new session cleanup job
func NewSessionCleanupJob(sessions IdleCleaner, ttl time.Duration, schedule string, log *logger.Logger) *SessionCleanupJob {
	return &SessionCleanupJob{
		sessions: sessions,
		ttl:      ttl,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *SessionCleanupJob) Name() string {
	return "session_cleanup"
}

// Schedule returns the cron schedule
func (j *SessionCleanupJob) Schedule() string {
	return j.schedule
}

// Run executes the cleanup
func (j *SessionCleanupJob) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if n := j.sessions.CleanIdle(j.ttl); n > 0 {
		j.logger.WithField("evicted", n).Debug("Session cleanup completed")
	}
	return nil
}
