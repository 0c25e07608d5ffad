package sweeper

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"escape-rooms-backend/internal/infra/metrics"
	"escape-rooms-backend/internal/pkg/clock"
	"escape-rooms-backend/internal/usecase/commands"
)

const maxReportedErrors = 10

// Report summarizes one sweep run.
type Report struct {
	Scanned   int           `json:"scanned"`
	Cancelled int           `json:"cancelled"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Errors    []string      `json:"errors,omitempty"`
	DryRun    bool          `json:"dry_run"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Sweeper periodically cancels expired holds. A run that overlaps the
// next tick makes the tick a no-op, and time.Ticker drops backlogged
// ticks, so missed intervals coalesce into a single following run.
type Sweeper struct {
	cmds     commands.SweepCommands
	interval time.Duration
	clock    clock.Clock
	logger   *slog.Logger

	inFlight atomic.Bool
	stop     chan struct{}
	done     chan struct{}
}

func New(cmds commands.SweepCommands, interval time.Duration, clk clock.Clock, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		cmds:     cmds,
		interval: interval,
		clock:    clk,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	go s.loop()
	s.logger.Info("sweeper started", "interval", s.interval.String())
}

func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
	s.logger.Info("sweeper stopped")
}

func (s *Sweeper) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Sweeper) tick() {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Warn("sweep still running, skipping tick")
		return
	}
	defer s.inFlight.Store(false)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("sweep panicked", "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	report, err := s.RunOnce(ctx, false)
	if err != nil {
		s.logger.Error("sweep failed", "error", err.Error())
		return
	}
	if report.Scanned > 0 || report.Failed > 0 {
		s.logger.Info("sweep completed",
			"scanned", report.Scanned,
			"cancelled", report.Cancelled,
			"skipped", report.Skipped,
			"failed", report.Failed,
			"duration_ms", report.Duration.Milliseconds())
	}
}

// RunOnce executes a single sweep. It is also the operator entry point;
// with dryRun it reports what would be cancelled without mutating.
// Per-item failures are isolated: one broken hold never stops the rest.
func (s *Sweeper) RunOnce(ctx context.Context, dryRun bool) (*Report, error) {
	now := s.clock.Now()
	report := &Report{DryRun: dryRun, StartedAt: now}

	ids, err := s.cmds.ListExpired(ctx, now)
	if err != nil {
		return nil, err
	}
	report.Scanned = len(ids)

	for _, id := range ids {
		if dryRun {
			report.Cancelled++
			continue
		}

		cancelled, err := s.cmds.CancelExpired(ctx, id, now)
		switch {
		case err != nil:
			report.Failed++
			if len(report.Errors) < maxReportedErrors {
				report.Errors = append(report.Errors, id.String()+": "+err.Error())
			}
			s.logger.Error("failed to cancel expired hold", "reservation_id", id.String(), "error", err.Error())
		case cancelled:
			report.Cancelled++
		default:
			report.Skipped++
		}
	}

	report.Duration = s.clock.Now().Sub(now)
	metrics.SweepCompleted(report.Duration, report.Cancelled, report.Failed, dryRun)
	return report, nil
}
