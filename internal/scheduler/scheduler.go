package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ExpirySweeper is the booking engine's sweep operation.
type ExpirySweeper interface {
	ExpirePendingPayment(ctx context.Context) (int, error)
}

// Logger is the leveled logging surface.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler runs the payment-expiry sweep on a fixed interval. The sweep also
// runs inline before every mutating booking operation; this timer only bounds
// how long a stale soft lock can linger with no traffic.
type Scheduler struct {
	cron    *cron.Cron
	sweeper ExpirySweeper
	logger  Logger
}

// New creates a scheduler sweeping every interval.
func New(sweeper ExpirySweeper, interval time.Duration, logger Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		sweeper: sweeper,
		logger:  logger,
	}

	schedule := fmt.Sprintf("@every %s", interval)
	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return nil, fmt.Errorf("scheduler: failed to register sweep job: %w", err)
	}

	return s, nil
}

// Start launches the timer in its own goroutine.
func (s *Scheduler) Start() {
	s.logger.Info("Scheduler: expiry sweep started")
	s.cron.Start()
}

// Stop halts the timer and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler: expiry sweep stopped")
}

func (s *Scheduler) sweep() {
	count, err := s.sweeper.ExpirePendingPayment(context.Background())
	if err != nil {
		s.logger.Error("Scheduler: expiry sweep failed: %v", err)
		return
	}
	if count > 0 {
		s.logger.Info("Scheduler: expiry sweep released %d stale booking(s)", count)
	}
}
