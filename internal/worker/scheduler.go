package worker

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

// Scheduler runs the backfill job on a cron schedule. Each run fetches the
// previous day, so the store stays one day behind real time.
type Scheduler struct {
	scheduler *gocron.Scheduler
	job       *BackfillJob
	cronExpr  string
	logger    zerolog.Logger
}

// NewScheduler creates a scheduler that runs job on the given cron expression.
func NewScheduler(job *BackfillJob, cronExpr string, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		job:       job,
		cronExpr:  cronExpr,
		logger:    logger,
	}
}

// Start schedules the nightly job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Cron(s.cronExpr).Do(func() {
		yesterday := time.Now().UTC().AddDate(0, 0, -1)

		ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
		defer cancel()

		result := s.job.Run(ctx, yesterday, yesterday)
		if result.Failed > 0 {
			s.logger.Warn().
				Str("backfill_id", result.ID).
				Int("failed", result.Failed).
				Msg("scheduled backfill had failures")
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info().
		Str("cron", s.cronExpr).
		Msg("backfill scheduler started")
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
