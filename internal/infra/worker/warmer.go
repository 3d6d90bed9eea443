// Package worker runs the in-process cache warmer. The response cache lives in
// the API process, so the warmer is scheduled there rather than in a separate
// binary.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"aniexo/internal/handler/http/respond"
	"aniexo/internal/observability/metrics"
	"aniexo/internal/usecase/catalog"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Cycle statuses recorded in warmer_cycles_total.
const (
	CycleSuccess = "success"
	CyclePartial = "partial"
	CycleSkipped = "skipped"
)

// refreshConcurrency caps parallel refreshes. The upstream client spaces
// requests anyway, so more would only queue behind its limiter.
const refreshConcurrency = 2

// ErrCycleInProgress is returned by RunOnce while another cycle is running.
var ErrCycleInProgress = errors.New("warm cycle already in progress")

// DefaultViews are the fixed views kept warm.
var DefaultViews = []string{
	catalog.ViewTrending,
	catalog.ViewUpcoming,
	catalog.ViewUnderrated,
	catalog.ViewGenres,
}

// Refresher refetches one view and overwrites its cache entry.
type Refresher interface {
	Refresh(ctx context.Context, view string) error
}

// Warmer refreshes the fixed catalog views on a cron schedule.
type Warmer struct {
	svc     Refresher
	cfg     WarmerConfig
	views   []string
	logger  *slog.Logger
	metrics *Metrics

	running atomic.Bool
	cron    *cron.Cron
}

// NewWarmer creates a Warmer for DefaultViews. Call Start to schedule it.
func NewWarmer(svc Refresher, cfg WarmerConfig, logger *slog.Logger, m *Metrics) *Warmer {
	return &Warmer{
		svc:     svc,
		cfg:     cfg,
		views:   DefaultViews,
		logger:  logger,
		metrics: m,
	}
}

// RunOnce refreshes every view. A failing view does not stop the others;
// all failures are returned joined.
func (w *Warmer) RunOnce(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		w.metrics.RecordCycle(CycleSkipped)
		w.logger.Warn("warm cycle skipped, previous cycle still running")
		return ErrCycleInProgress
	}
	defer w.running.Store(false)

	ctx, cancel := context.WithTimeout(ctx, w.cfg.RunTimeout)
	defer cancel()

	start := time.Now()
	var (
		mu   sync.Mutex
		errs []error
	)
	var g errgroup.Group
	g.SetLimit(refreshConcurrency)
	for _, view := range w.views {
		g.Go(func() error {
			err := w.svc.Refresh(ctx, view)
			metrics.RecordWarmerRun(view, err)
			if err != nil {
				w.logger.Warn("view refresh failed",
					slog.String("view", view),
					slog.String("error", respond.SanitizeError(err)))
				mu.Lock()
				errs = append(errs, fmt.Errorf("refresh %s: %w", view, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	elapsed := time.Since(start)
	metrics.RecordWarmerDuration(elapsed)

	if len(errs) > 0 {
		w.metrics.RecordCycle(CyclePartial)
		w.logger.Warn("warm cycle completed with failures",
			slog.Int("views", len(w.views)),
			slog.Int("failed", len(errs)),
			slog.Duration("duration", elapsed))
		return errors.Join(errs...)
	}

	w.metrics.RecordCycle(CycleSuccess)
	w.logger.Info("warm cycle completed",
		slog.Int("views", len(w.views)),
		slog.Duration("duration", elapsed))
	return nil
}

// Start schedules RunOnce. Scheduled cycles use ctx, so cancelling it aborts
// in-flight refreshes; Stop halts the schedule.
func (w *Warmer) Start(ctx context.Context) error {
	loc, err := time.LoadLocation(w.cfg.Timezone)
	if err != nil {
		return fmt.Errorf("warmer timezone: %w", err)
	}

	c := cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))
	if _, err := c.AddFunc(w.cfg.Schedule, func() { _ = w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("warmer schedule: %w", err)
	}
	w.cron = c
	c.Start()

	if w.cfg.OnStart {
		go func() { _ = w.RunOnce(ctx) }()
	}

	w.logger.Info("cache warmer started",
		slog.String("schedule", w.cfg.Schedule),
		slog.String("timezone", w.cfg.Timezone),
		slog.Any("views", w.views))
	return nil
}

// Stop halts the schedule and waits for a running scheduled cycle to return.
func (w *Warmer) Stop() {
	if w.cron == nil {
		return
	}
	<-w.cron.Stop().Done()
	w.logger.Info("cache warmer stopped")
}
