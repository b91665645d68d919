package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hilthontt/roomly/application/usecases/access"
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
	ErrBookingNotFound             = apperror.NotFound("booking not found")
	ErrStartInPast                 = apperror.InvalidState("cannot create booking in the past")
	ErrTimeSlotTaken               = apperror.Conflict("time slot is already booked")
	ErrParticipantsBlockTimeChange = apperror.InvalidState("remove all participants before changing the booking time")
)

// storedInstant reduces t to what a timestamptz column keeps, so the
// overlap check sees the same instants the database constraint does.
func storedInstant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

type CreateInput struct {
	MeetingRoomID string
	StartTime     time.Time
	EndTime       time.Time
	Description   string
}

// UpdateInput leaves nil fields unchanged.
type UpdateInput struct {
	StartTime   *time.Time
	EndTime     *time.Time
	Description *string
}

func (in UpdateInput) changesTime() bool {
	return in.StartTime != nil || in.EndTime != nil
}

type BookingUseCase interface {
	Create(ctx context.Context, callerID string, input CreateInput) (*model.Booking, error)
	Update(ctx context.Context, callerID, bookingID string, input UpdateInput) (*model.Booking, error)
	Delete(ctx context.Context, callerID, bookingID string) error
	GetByID(ctx context.Context, bookingID string) (*model.Booking, error)
	ListByRoom(ctx context.Context, roomID string) ([]model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
}

type bookingUseCase struct {
	bookings       repository.BookingRepository
	participants   repository.ParticipantRepository
	rooms          repository.RoomRepository
	transactor     repository.Transactor
	gate           access.Gate
	conflicts      *ConflictChecker
	sweeper        cleanup.Sweeper
	clock          clock.Clock
	eventPublisher events.Publisher
	logger         *logger.Logger
}

func NewBookingUseCase(
	bookings repository.BookingRepository,
	participants repository.ParticipantRepository,
	rooms repository.RoomRepository,
	transactor repository.Transactor,
	gate access.Gate,
	sweeper cleanup.Sweeper,
	clk clock.Clock,
	eventPublisher events.Publisher,
	logger *logger.Logger,
) BookingUseCase {
	return &bookingUseCase{
		bookings:       bookings,
		participants:   participants,
		rooms:          rooms,
		transactor:     transactor,
		gate:           gate,
		conflicts:      NewConflictChecker(bookings),
		sweeper:        sweeper,
		clock:          clk,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (uc *bookingUseCase) Create(ctx context.Context, callerID string, input CreateInput) (*model.Booking, error) {
	if _, err := uc.gate.RequireAdmin(ctx, input.MeetingRoomID, callerID); err != nil {
		return nil, err
	}

	interval := schedule.NewInterval(storedInstant(input.StartTime), storedInstant(input.EndTime))
	if interval.StartsBefore(uc.clock.Now()) {
		return nil, ErrStartInPast
	}
	if err := interval.Validate(); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		MeetingRoomID: input.MeetingRoomID,
		UserID:        callerID,
		StartTime:     interval.Start,
		EndTime:       interval.End,
		Description:   input.Description,
	}

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := uc.rooms.LockByID(ctx, input.MeetingRoomID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return access.ErrRoomNotFound
			}
			return fmt.Errorf("failed to lock room: %w", err)
		}

		conflict, err := uc.conflicts.HasConflict(ctx, input.MeetingRoomID, interval, "")
		if err != nil {
			return err
		}
		if conflict {
			return ErrTimeSlotTaken
		}

		return writeError(uc.bookings.Create(ctx, booking), "create booking")
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("roomID", booking.MeetingRoomID),
		zap.String("userID", callerID),
	)
	uc.publish(ctx, events.EventBookingCreated, callerID, booking)

	return uc.load(ctx, booking.ID)
}

func (uc *bookingUseCase) Update(ctx context.Context, callerID, bookingID string, input UpdateInput) (*model.Booking, error) {
	existing, err := uc.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.gate.RequireAdmin(ctx, existing.MeetingRoomID, callerID); err != nil {
		return nil, err
	}

	switch {
	case input.changesTime():
		err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			return uc.updateTime(ctx, existing.MeetingRoomID, bookingID, input)
		})
	case input.Description != nil:
		err = writeError(uc.bookings.Update(ctx, bookingID, map[string]any{
			"description": *input.Description,
		}), "update booking")
	}
	if err != nil {
		return nil, err
	}

	updated, err := uc.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("booking updated",
		zap.String("bookingID", bookingID),
		zap.Bool("timeChanged", input.changesTime()),
	)
	uc.publish(ctx, events.EventBookingUpdated, callerID, updated)
	return updated, nil
}

// updateTime must run inside a transaction. The room is locked before the
// booking, in the same order Create uses.
func (uc *bookingUseCase) updateTime(ctx context.Context, roomID, bookingID string, input UpdateInput) error {
	if _, err := uc.rooms.LockByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return access.ErrRoomNotFound
		}
		return fmt.Errorf("failed to lock room: %w", err)
	}

	current, err := uc.bookings.LockByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to lock booking: %w", err)
	}

	count, err := uc.participants.CountByBooking(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to count participants: %w", err)
	}
	if count > 0 {
		return ErrParticipantsBlockTimeChange
	}

	interval := schedule.Of(*current)
	if input.StartTime != nil {
		interval.Start = storedInstant(*input.StartTime)
	}
	if input.EndTime != nil {
		interval.End = storedInstant(*input.EndTime)
	}

	conflict, err := uc.conflicts.HasConflict(ctx, roomID, interval, bookingID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrTimeSlotTaken
	}

	fields := map[string]any{
		"start_time": interval.Start,
		"end_time":   interval.End,
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	return writeError(uc.bookings.Update(ctx, bookingID, fields), "update booking")
}

func (uc *bookingUseCase) Delete(ctx context.Context, callerID, bookingID string) error {
	existing, err := uc.find(ctx, bookingID)
	if err != nil {
		return err
	}

	if _, err := uc.gate.RequireAdmin(ctx, existing.MeetingRoomID, callerID); err != nil {
		return err
	}

	if err := uc.bookings.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	uc.logger.Info("booking deleted", zap.String("bookingID", bookingID), zap.String("userID", callerID))
	uc.publish(ctx, events.EventBookingDeleted, callerID, existing)
	return nil
}

func (uc *bookingUseCase) GetByID(ctx context.Context, bookingID string) (*model.Booking, error) {
	uc.sweeper.Sweep(ctx)
	return uc.load(ctx, bookingID)
}

func (uc *bookingUseCase) ListByRoom(ctx context.Context, roomID string) ([]model.Booking, error) {
	uc.sweeper.Sweep(ctx)

	bookings, err := uc.bookings.ListDetailedByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list room bookings: %w", err)
	}
	return bookings, nil
}

func (uc *bookingUseCase) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	uc.sweeper.Sweep(ctx)

	bookings, err := uc.bookings.ListDetailedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	return bookings, nil
}

func (uc *bookingUseCase) find(ctx context.Context, bookingID string) (*model.Booking, error) {
	booking, err := uc.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (uc *bookingUseCase) load(ctx context.Context, bookingID string) (*model.Booking, error) {
	booking, err := uc.bookings.GetDetailed(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (uc *bookingUseCase) publish(ctx context.Context, eventType events.EventType, callerID string, booking *model.Booking) {
	uc.eventPublisher.Publish(ctx, events.NewEvent(eventType, callerID, booking.MeetingRoomID, booking.ID, map[string]any{
		"startTime": booking.StartTime,
		"endTime":   booking.EndTime,
	}))
}

// writeError maps constraint violations raised by the database onto
// ErrTimeSlotTaken.
func writeError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrOverlap), errors.Is(err, repository.ErrDuplicate):
		return ErrTimeSlotTaken
	case errors.Is(err, repository.ErrNotFound):
		return ErrBookingNotFound
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
