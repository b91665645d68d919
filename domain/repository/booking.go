package repository

import (
	"context"
	"time"

	"github.com/hilthontt/roomly/domain/model"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	// GetDetailed loads the owner, the room and the participants with their users.
	GetDetailed(ctx context.Context, id string) (*model.Booking, error)
	// ListByRoom returns every booking of the room without relations.
	ListByRoom(ctx context.Context, roomID string) ([]model.Booking, error)
	ListDetailedByRoom(ctx context.Context, roomID string) ([]model.Booking, error)
	ListDetailedByUser(ctx context.Context, userID string) ([]model.Booking, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	LockByID(ctx context.Context, id string) (*model.Booking, error)
}

type ParticipantRepository interface {
	Create(ctx context.Context, participant *model.BookingParticipant) error
	Get(ctx context.Context, bookingID, userID string) (*model.BookingParticipant, error)
	GetWithUser(ctx context.Context, bookingID, userID string) (*model.BookingParticipant, error)
	CountByBooking(ctx context.Context, bookingID string) (int64, error)
	Delete(ctx context.Context, bookingID, userID string) error
	// ListEndedBookingIDs returns the ids of bookings with end < now that
	// still have at least one participant.
	ListEndedBookingIDs(ctx context.Context, now time.Time) ([]string, error)
	DeleteByBookingIDs(ctx context.Context, bookingIDs []string) (int64, error)
}
