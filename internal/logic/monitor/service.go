package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skillcoder/replica-alerter/internal/infra/metrics"
)

// Service runs the collection, evaluation and dispatch pass. It keeps no
// state between passes beyond the last run summary used for health reporting;
// the incident endpoint performs the actual deduplication via the dedup key.
type Service struct {
	logger     *slog.Logger
	repo       Repository
	notifier   Notifier
	watcher    Watcher
	scheduler  Scheduler
	interval   time.Duration
	ready      chan struct{}
	doneCh     chan struct{}
	inShutdown atomic.Bool
	mu         sync.RWMutex
	lastRun    RunSummary
}

// New creates a new monitor service.
func New(
	logger *slog.Logger,
	repo Repository,
	notifier Notifier,
	watcher Watcher,
	scheduler Scheduler,
	interval time.Duration,
) *Service {
	return &Service{
		logger:    logger,
		repo:      repo,
		notifier:  notifier,
		watcher:   watcher,
		scheduler: scheduler,
		interval:  interval,
		ready:     make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// RunOnceCommand executes one complete pass: collectors, evaluation, dispatch.
// Once a pass has started it always completes; individual collector or
// dispatch failures are logged and tallied, never propagated.
func (s *Service) RunOnceCommand(ctx context.Context) RunSummary {
	logger := s.logger.With("monitor", "RunOnceCommand")

	collected := s.collectAll(ctx)
	logger.InfoContext(ctx, "metrics collected", "count", len(collected))

	triggers, resolves := Evaluate(collected)

	summary := RunSummary{MetricsCollected: len(collected)}

	for _, event := range triggers {
		if s.dispatch(ctx, event) {
			summary.TriggersSent++
		} else {
			summary.DispatchFailures++
		}
	}

	for _, event := range resolves {
		if s.dispatch(ctx, event) {
			summary.ResolvesSent++
		} else {
			summary.DispatchFailures++
		}
	}

	summary.CompletedAt = time.Now()
	s.setLastRun(summary)

	logger.InfoContext(ctx, "run complete",
		"metrics", summary.MetricsCollected,
		"triggers", summary.TriggersSent,
		"resolves", summary.ResolvesSent,
		"dispatchFailures", summary.DispatchFailures,
	)

	return summary
}

func (s *Service) dispatch(ctx context.Context, event AlertEvent) bool {
	logger := s.logger.With(
		"resource", event.ResourceKey,
		"type", event.ResourceType,
		"dedupKey", event.DedupKey,
		"action", event.Action,
	)

	var err error

	switch event.Action {
	case ActionTrigger:
		err = s.notifier.TriggerCommand(ctx, event)
	case ActionResolve:
		err = s.notifier.ResolveCommand(ctx, event)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAlertAction, event.Action)
	}

	if err != nil {
		logger.ErrorContext(ctx, "alert dispatch failed", "reason", err)
		metrics.RecordDispatchFailure(string(event.Action))

		return false
	}

	logger.InfoContext(ctx, "alert dispatched")
	metrics.RecordAlertSent(string(event.Action))

	return true
}

// Start launches the interval loop in a goroutine.
func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "monitor service is shutting down, skipping start")

		return nil
	}

	go s.RunCommand(ctx)

	return nil
}

// Name returns the name of the service component.
func (s *Service) Name() string {
	return "replica-alerter-monitor"
}

// Ready returns a channel that is closed once the first pass has been started.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Ping reports unhealthy before the first pass and when the last pass ended
// more than two intervals ago.
func (s *Service) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
		lastRunAge := time.Since(s.LastRun().CompletedAt)
		if s.interval > 0 && lastRunAge > 2*s.interval {
			return fmt.Errorf("last run was too long ago: %s", lastRunAge.Round(time.Second).String())
		}

		return nil
	default:
		return fmt.Errorf("monitor service is not ready")
	}
}

// RunCommand runs passes in a loop with the configured interval until the
// context is cancelled.
func (s *Service) RunCommand(ctx context.Context) {
	defer close(s.doneCh)

	logger := s.logger.With("monitor", "RunCommand")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	close(s.ready)

	for {
		s.RunOnceCommand(ctx)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			logger.InfoContext(ctx, "terminating monitor loop")

			return
		}
	}
}

// Shutdown waits for the interval loop to exit.
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "monitor service is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "monitor service shut down")
	}()

	s.logger.InfoContext(ctx, "shutting down monitor service")

	// RunCommand exits on context cancellation, which main's signal handler
	// performs before the shutdown sequence runs.
	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before monitor loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "monitor loop exited")
	}

	return nil
}

// LastRun returns the summary of the most recent completed pass.
func (s *Service) LastRun() RunSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastRun
}

func (s *Service) setLastRun(summary RunSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRun = summary
}
