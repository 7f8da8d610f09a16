package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Job is one scheduled run of the report pipeline.
type Job func(ctx context.Context)

// Scheduler re-runs a job on a fixed interval until its context is cancelled.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
		logger:    logger,
	}
}

// Run starts the job immediately and then every interval, blocking until ctx
// is done. Runs never overlap.
func (s *Scheduler) Run(ctx context.Context, job Job) error {
	if s.interval <= 0 {
		return errors.New("scheduler: interval must be positive")
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(func() {
		s.logger.Debug("scheduler: running weather job")
		job(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Debug("scheduler: started", "interval", s.interval)

	<-ctx.Done()
	s.scheduler.Stop()
	s.logger.Debug("scheduler: stopped")
	return nil
}
