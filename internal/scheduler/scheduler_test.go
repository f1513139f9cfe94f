package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (c *countingSweeper) ExpirePendingPayment(ctx context.Context) (int, error) {
	c.calls.Add(1)
	return 0, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestScheduler_RunsSweepPeriodically(t *testing.T) {
	sweeper := &countingSweeper{}
	s, err := New(sweeper, 10*time.Millisecond, nopLogger{})
	assert.NoError(t, err)

	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, sweeper.calls.Load(), int32(2))
}

func TestScheduler_StopHaltsSweeping(t *testing.T) {
	sweeper := &countingSweeper{}
	s, err := New(sweeper, 10*time.Millisecond, nopLogger{})
	assert.NoError(t, err)

	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	after := sweeper.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, sweeper.calls.Load())
}
