package participant

import (
	"context"
	"errors"
	"fmt"

	"github.com/hilthontt/roomly/application/usecases/access"
	"github.com/hilthontt/roomly/application/usecases/booking"
	"github.com/hilthontt/roomly/application/usecases/cleanup"
	"github.com/hilthontt/roomly/domain/apperror"
	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/domain/repository"
	"github.com/hilthontt/roomly/domain/schedule"
	"github.com/hilthontt/roomly/infrastructure/clock"
	"github.com/hilthontt/roomly/infrastructure/events"
	"github.com/hilthontt/roomly/infrastructure/logger"
	"go.uber.org/zap"
)

var (
	ErrAlreadyParticipant = apperror.Conflict("you are already a participant of this booking")
	ErrBookingNotStarted  = apperror.InvalidState("cannot join a booking that has not started yet")
	ErrBookingEnded       = apperror.InvalidState("cannot join a booking that has already ended")
	ErrNotParticipant     = apperror.NotFound("you are not a participant of this booking")
)

type ParticipantUseCase interface {
	Join(ctx context.Context, callerID, bookingID string) (*model.BookingParticipant, error)
	Leave(ctx context.Context, callerID, bookingID string) error
}

type participantUseCase struct {
	participants   repository.ParticipantRepository
	bookings       repository.BookingRepository
	transactor     repository.Transactor
	gate           access.Gate
	sweeper        cleanup.Sweeper
	clock          clock.Clock
	eventPublisher events.Publisher
	logger         *logger.Logger
}

func NewParticipantUseCase(
	participants repository.ParticipantRepository,
	bookings repository.BookingRepository,
	transactor repository.Transactor,
	gate access.Gate,
	sweeper cleanup.Sweeper,
	clk clock.Clock,
	eventPublisher events.Publisher,
	logger *logger.Logger,
) ParticipantUseCase {
	return &participantUseCase{
		participants:   participants,
		bookings:       bookings,
		transactor:     transactor,
		gate:           gate,
		sweeper:        sweeper,
		clock:          clk,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (uc *participantUseCase) Join(ctx context.Context, callerID, bookingID string) (*model.BookingParticipant, error) {
	uc.sweeper.Sweep(ctx)

	b, err := uc.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if _, err := uc.gate.RequireMember(ctx, b.MeetingRoomID, callerID); err != nil {
		return nil, err
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := uc.bookings.LockByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return booking.ErrBookingNotFound
			}
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		_, err = uc.participants.Get(ctx, bookingID, callerID)
		switch {
		case err == nil:
			return ErrAlreadyParticipant
		case !errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("failed to get participant: %w", err)
		}

		switch schedule.StateAt(schedule.Of(*locked), uc.clock.Now()) {
		case schedule.StateUpcoming:
			return ErrBookingNotStarted
		case schedule.StateEnded:
			return ErrBookingEnded
		}

		err = uc.participants.Create(ctx, &model.BookingParticipant{
			BookingID: bookingID,
			UserID:    callerID,
		})
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyParticipant
		}
		if err != nil {
			return fmt.Errorf("failed to add participant: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("participant joined", zap.String("bookingID", bookingID), zap.String("userID", callerID))
	uc.eventPublisher.Publish(ctx, events.NewEvent(events.EventBookingJoined, callerID, b.MeetingRoomID, bookingID, nil))

	participant, err := uc.participants.GetWithUser(ctx, bookingID, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return participant, nil
}

// Leave has no lifecycle restriction.
func (uc *participantUseCase) Leave(ctx context.Context, callerID, bookingID string) error {
	b, err := uc.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotParticipant
		}
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if err := uc.participants.Delete(ctx, bookingID, callerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotParticipant
		}
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	uc.logger.Info("participant left", zap.String("bookingID", bookingID), zap.String("userID", callerID))
	uc.eventPublisher.Publish(ctx, events.NewEvent(events.EventBookingLeft, callerID, b.MeetingRoomID, bookingID, nil))
	return nil
}
