// Package scheduler runs the periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/jhoicas/revops-api/pkg/logger"
)

// Refresher recomputes cached dashboards.
type Refresher interface {
	RefreshCached(ctx context.Context) (int, error)
}

// Scheduler wraps a gocron scheduler holding the dashboard refresh job.
type Scheduler struct {
	s       gocron.Scheduler
	log     *logger.Logger
	timeout time.Duration
}

// New registers the refresh job every interval. It returns (nil, nil) when
// interval is not positive, meaning there is nothing to schedule.
func New(r Refresher, interval time.Duration, log *logger.Logger) (*Scheduler, error) {
	if interval <= 0 || r == nil {
		return nil, nil
	}
	if log == nil {
		log = logger.Nop()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	sch := &Scheduler{s: s, log: log.Component("scheduler"), timeout: interval}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(sch.refresh, r),
		gocron.WithName("dashboard-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("register dashboard refresh: %w", err)
	}
	return sch, nil
}

func (sch *Scheduler) refresh(r Refresher) {
	ctx, cancel := context.WithTimeout(context.Background(), sch.timeout)
	defer cancel()
	start := time.Now()
	n, err := r.RefreshCached(ctx)
	if err != nil {
		sch.log.Error().Err(err).Int("refreshed", n).Msg("dashboard refresh failed")
		return
	}
	sch.log.Debug().Int("refreshed", n).Dur("took", time.Since(start)).Msg("dashboards refreshed")
}

// Start begins running jobs in the background.
func (sch *Scheduler) Start() {
	sch.log.Info().Msg("starting background scheduler")
	sch.s.Start()
}

// Stop waits for running jobs and stops the scheduler.
func (sch *Scheduler) Stop() error {
	sch.log.Info().Msg("stopping background scheduler")
	return sch.s.Shutdown()
}
