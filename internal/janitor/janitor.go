// Package janitor sweeps image uploads that were presigned but never
// attached to a car listing.
package janitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/askarbek/carvault/internal/metrics"
	"github.com/robfig/cron/v3"
)

// sweeper is satisfied by *usecase.ImageUsecase.
type sweeper interface {
	SweepOrphans(ctx context.Context, maxAge time.Duration) (int, error)
}

type Janitor struct {
	images   sweeper
	logger   *slog.Logger
	schedule string
	maxAge   time.Duration
	cron     *cron.Cron
}

func New(images sweeper, logger *slog.Logger, schedule string, maxAge time.Duration) *Janitor {
	return &Janitor{
		images:   images,
		logger:   logger.With("component", "janitor"),
		schedule: schedule,
		maxAge:   maxAge,
	}
}

// Start registers the sweep on the cron schedule and runs it until ctx is
// cancelled. Returns an error only if the schedule expression is invalid.
func (j *Janitor) Start(ctx context.Context) error {
	j.cron = cron.New()
	if _, err := j.cron.AddFunc(j.schedule, func() { j.sweep(ctx) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("janitor started", "schedule", j.schedule, "max_age", j.maxAge)

	go func() {
		<-ctx.Done()
		<-j.cron.Stop().Done()
		j.logger.Info("janitor shut down")
	}()
	return nil
}

func (j *Janitor) sweep(ctx context.Context) {
	start := time.Now()

	removed, err := j.images.SweepOrphans(ctx, j.maxAge)
	if err != nil {
		j.logger.Error("janitor sweep", "error", err)
		return
	}

	metrics.JanitorCycleDuration.Observe(time.Since(start).Seconds())
	if removed > 0 {
		metrics.JanitorSweptTotal.Add(float64(removed))
		j.logger.Info("janitor removed orphaned uploads", "count", removed)
	}
}
