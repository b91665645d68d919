package mocks

import (
	"context"
	"time"

	"github.com/hilthontt/roomly/domain/model"
	"github.com/stretchr/testify/mock"
)

type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	args := m.Called(ctx, id)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func (m *BookingRepository) GetDetailed(ctx context.Context, id string) (*model.Booking, error) {
	args := m.Called(ctx, id)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func (m *BookingRepository) ListByRoom(ctx context.Context, roomID string) ([]model.Booking, error) {
	args := m.Called(ctx, roomID)
	bookings, _ := args.Get(0).([]model.Booking)
	return bookings, args.Error(1)
}

func (m *BookingRepository) ListDetailedByRoom(ctx context.Context, roomID string) ([]model.Booking, error) {
	args := m.Called(ctx, roomID)
	bookings, _ := args.Get(0).([]model.Booking)
	return bookings, args.Error(1)
}

func (m *BookingRepository) ListDetailedByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	args := m.Called(ctx, userID)
	bookings, _ := args.Get(0).([]model.Booking)
	return bookings, args.Error(1)
}

func (m *BookingRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *BookingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BookingRepository) LockByID(ctx context.Context, id string) (*model.Booking, error) {
	args := m.Called(ctx, id)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func bookingOrNil(v any) *model.Booking {
	if v == nil {
		return nil
	}
	return v.(*model.Booking)
}

type ParticipantRepository struct {
	mock.Mock
}

func (m *ParticipantRepository) Create(ctx context.Context, participant *model.BookingParticipant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

func (m *ParticipantRepository) Get(ctx context.Context, bookingID, userID string) (*model.BookingParticipant, error) {
	args := m.Called(ctx, bookingID, userID)
	return participantOrNil(args.Get(0)), args.Error(1)
}

func (m *ParticipantRepository) GetWithUser(ctx context.Context, bookingID, userID string) (*model.BookingParticipant, error) {
	args := m.Called(ctx, bookingID, userID)
	return participantOrNil(args.Get(0)), args.Error(1)
}

func (m *ParticipantRepository) CountByBooking(ctx context.Context, bookingID string) (int64, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ParticipantRepository) Delete(ctx context.Context, bookingID, userID string) error {
	args := m.Called(ctx, bookingID, userID)
	return args.Error(0)
}

func (m *ParticipantRepository) ListEndedBookingIDs(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx, now)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *ParticipantRepository) DeleteByBookingIDs(ctx context.Context, bookingIDs []string) (int64, error) {
	args := m.Called(ctx, bookingIDs)
	return args.Get(0).(int64), args.Error(1)
}

func participantOrNil(v any) *model.BookingParticipant {
	if v == nil {
		return nil
	}
	return v.(*model.BookingParticipant)
}
