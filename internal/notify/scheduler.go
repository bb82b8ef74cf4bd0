package notify

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/kahayonz/safeflight/internal/config"
)

// Scheduler triggers one scan-and-send pass per calendar day at a fixed wall
// clock time in a named time zone, regardless of server-local time.
type Scheduler struct {
	pipeline *Pipeline
	loc      *time.Location
	at       config.Clock
	logger   *slog.Logger
	now      func() time.Time

	running atomic.Bool // re-entrancy guard: one pass at a time
}

// NewScheduler creates a scheduler firing daily at the given wall-clock time.
func NewScheduler(pipeline *Pipeline, loc *time.Location, at config.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		pipeline: pipeline,
		loc:      loc,
		at:       at,
		logger:   logger,
		now:      time.Now,
	}
}

// SetNow overrides the clock. Test hook.
func (s *Scheduler) SetNow(now func() time.Time) { s.now = now }

// Start runs the daily trigger loop. Blocks until ctx is cancelled. Intended
// to be called with `go`.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("notification scheduler started",
		"timezone", s.loc.String(), "at", s.at)

	for {
		next := s.nextTrigger(s.now())
		timer := time.NewTimer(time.Until(next))
		s.logger.Info("next scan-and-send pass scheduled", "at", next)

		select {
		case <-timer.C:
			s.RunNow(ctx)
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("notification scheduler stopped")
			return
		}
	}
}

// RunNow executes one scan-and-send pass synchronously for today's date in
// the scheduler's time zone. This is the manual trigger path: it shares the
// scheduled path's pipeline call instead of duplicating it. A pass still in
// flight makes RunNow a no-op.
func (s *Scheduler) RunNow(ctx context.Context) Summary {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("scan-and-send pass already running, skipping trigger")
		return Summary{}
	}
	defer s.running.Store(false)

	today := s.now().In(s.loc).Format("2006-01-02")
	return s.pipeline.Run(ctx, today)
}

// nextTrigger returns the first instant after now that lands on the
// configured wall-clock time in the scheduler's zone.
func (s *Scheduler) nextTrigger(now time.Time) time.Time {
	local := now.In(s.loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.at.Hour, s.at.Minute, 0, 0, s.loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
