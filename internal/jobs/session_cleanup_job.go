package jobs

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SessionCleanupJob purges scanning sessions that have been idle longer than
// the configured TTL. Devices that vanish without calling session end would
// otherwise leave their sessions behind forever.
type SessionCleanupJob struct {
	handler commands.PurgeStaleSessionsCommandHandler
	ttl     time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSessionCleanupJob creates a cleanup job that treats sessions not updated
// within ttl as stale.
func NewSessionCleanupJob(
	handler commands.PurgeStaleSessionsCommandHandler,
	ttl time.Duration,
	logger *slog.Logger,
) *SessionCleanupJob {
	return &SessionCleanupJob{
		handler: handler,
		ttl:     ttl,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "session_cleanup_job"),
	}
}

// Start begins the cleanup job, running once a minute.
func (j *SessionCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewPurgeStaleSessionsCommand(time.Now().Add(-j.ttl))
		if err != nil {
			j.logger.ErrorContext(ctx, "Session cleanup job misconfigured", "error", err)
			return
		}

		purged, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Session cleanup job failed", "error", err)
			return
		}
		if purged > 0 {
			j.logger.InfoContext(ctx, "Purged stale sessions", "count", purged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session cleanup job started (running every minute)")
	return nil
}

// Stop stops the cleanup job.
func (j *SessionCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session cleanup job stopped")
}
