package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/hilthontt/roomly/infrastructure/logger"
	"go.uber.org/zap"
)

type Sweeper interface {
	Sweep(ctx context.Context) int
}

// ParticipantCleanupJob periodically clears the participants of ended
// bookings so the data stays tidy when no request triggers the inline sweep.
type ParticipantCleanupJob struct {
	sweeper  Sweeper
	logger   *logger.Logger
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewParticipantCleanupJob(sweeper Sweeper, logger *logger.Logger, interval time.Duration) *ParticipantCleanupJob {
	return &ParticipantCleanupJob{
		sweeper:  sweeper,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (j *ParticipantCleanupJob) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Info("Participant cleanup job started",
		zap.Duration("interval", j.interval),
	)

	j.runCleanup(ctx)

	for {
		select {
		case <-ticker.C:
			j.runCleanup(ctx)
		case <-j.stopChan:
			j.logger.Info("Participant cleanup job stopped")
			return
		case <-ctx.Done():
			j.logger.Info("Participant cleanup job context cancelled")
			return
		}
	}
}

func (j *ParticipantCleanupJob) Stop() {
	j.stopOnce.Do(func() { close(j.stopChan) })
}

func (j *ParticipantCleanupJob) runCleanup(ctx context.Context) {
	startTime := time.Now()
	removed := j.sweeper.Sweep(ctx)

	j.logger.Debug("Participant cleanup job completed",
		zap.Int("removed", removed),
		zap.Duration("duration", time.Since(startTime)),
	)
}
