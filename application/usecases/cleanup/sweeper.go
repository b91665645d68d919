package cleanup

import (
	"context"

	"github.com/hilthontt/roomly/domain/repository"
	"github.com/hilthontt/roomly/infrastructure/clock"
	"github.com/hilthontt/roomly/infrastructure/events"
	"github.com/hilthontt/roomly/infrastructure/logger"
	"github.com/hilthontt/roomly/infrastructure/metrics"
	"go.uber.org/zap"
)

const SweptMetric = "booking_participants_swept_total"

// Sweeper removes the participants of bookings that have ended. It never
// fails: errors are logged and reported as nothing swept.
type Sweeper interface {
	Sweep(ctx context.Context) int
}

type sweeper struct {
	participants   repository.ParticipantRepository
	clock          clock.Clock
	eventPublisher events.Publisher
	metrics        metrics.Manager
	logger         *logger.Logger
}

func NewSweeper(
	participants repository.ParticipantRepository,
	clk clock.Clock,
	eventPublisher events.Publisher,
	metricsManager metrics.Manager,
	logger *logger.Logger,
) Sweeper {
	metricsManager.NewCounter(SweptMetric, "Participant rows removed from ended bookings")
	return &sweeper{
		participants:   participants,
		clock:          clk,
		eventPublisher: eventPublisher,
		metrics:        metricsManager,
		logger:         logger,
	}
}

func (s *sweeper) Sweep(ctx context.Context) int {
	bookingIDs, err := s.participants.ListEndedBookingIDs(ctx, s.clock.Now())
	if err != nil {
		s.logger.Error("failed to find ended bookings", zap.Error(err))
		return 0
	}
	if len(bookingIDs) == 0 {
		return 0
	}

	removed, err := s.participants.DeleteByBookingIDs(ctx, bookingIDs)
	if err != nil {
		s.logger.Error("failed to remove participants of ended bookings",
			zap.Strings("bookingIDs", bookingIDs),
			zap.Error(err),
		)
		return 0
	}

	s.metrics.AddCounter(ctx, SweptMetric, removed)
	s.eventPublisher.Publish(ctx, events.NewEvent(events.EventParticipantsSwept, "", "", "", map[string]any{
		"bookingIds": bookingIDs,
		"removed":    removed,
	}))
	s.logger.Info("removed participants of ended bookings",
		zap.Int("bookings", len(bookingIDs)),
		zap.Int64("participants", removed),
	)
	return int(removed)
}
