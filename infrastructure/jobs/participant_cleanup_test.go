package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hilthontt/roomly/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep(ctx context.Context) int {
	s.calls.Add(1)
	return 0
}

func TestParticipantCleanupJobRunsImmediatelyAndOnTick(t *testing.T) {
	sweeper := &countingSweeper{}
	job := NewParticipantCleanupJob(sweeper, logger.NewNopLogger(), 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	job.Stop()
	job.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop")
	}
}

func TestParticipantCleanupJobStopsOnContextCancel(t *testing.T) {
	sweeper := &countingSweeper{}
	job := NewParticipantCleanupJob(sweeper, logger.NewNopLogger(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop")
	}
}
