package repository

import (
	"context"
	"time"

	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/domain/repository"
	"github.com/hilthontt/roomly/infrastructure/persistence/database"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var bookingPreloads = []database.PreloadEntity{
	{Entity: "User"},
	{Entity: "MeetingRoom"},
	{Entity: "Participants.User"},
}

type bookingRepository struct {
	*BaseRepository[model.Booking]
}

func NewBookingRepository(db *gorm.DB, tracer trace.Tracer) repository.BookingRepository {
	return &bookingRepository{
		BaseRepository: NewBaseRepository[model.Booking](db, tracer, "bookingRepository", bookingPreloads...),
	}
}

func (r *bookingRepository) ListByRoom(ctx context.Context, roomID string) ([]model.Booking, error) {
	ctx, span := r.startSpan(ctx, "ListByRoom", attribute.String("room.id", roomID))
	var bookings []model.Booking
	err := r.conn(ctx).
		Where("meeting_room_id = ?", roomID).
		Order("start_time ASC").
		Find(&bookings).
		Error
	if err = endSpan(span, err, "list room bookings"); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ListDetailedByRoom(ctx context.Context, roomID string) ([]model.Booking, error) {
	ctx, span := r.startSpan(ctx, "ListDetailedByRoom", attribute.String("room.id", roomID))
	var bookings []model.Booking
	err := database.PreloadWithConditions(r.conn(ctx), bookingPreloads).
		Where("meeting_room_id = ?", roomID).
		Order("start_time ASC").
		Find(&bookings).
		Error
	if err = endSpan(span, err, "list detailed room bookings"); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ListDetailedByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	ctx, span := r.startSpan(ctx, "ListDetailedByUser", attribute.String("user.id", userID))
	var bookings []model.Booking
	err := database.PreloadWithConditions(r.conn(ctx), bookingPreloads).
		Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&bookings).
		Error
	if err = endSpan(span, err, "list user bookings"); err != nil {
		return nil, err
	}
	return bookings, nil
}

type participantRepository struct {
	*BaseRepository[model.BookingParticipant]
}

func NewParticipantRepository(db *gorm.DB, tracer trace.Tracer) repository.ParticipantRepository {
	return &participantRepository{
		BaseRepository: NewBaseRepository[model.BookingParticipant](db, tracer, "participantRepository"),
	}
}

func (r *participantRepository) get(ctx context.Context, op, bookingID, userID string, preloads ...string) (*model.BookingParticipant, error) {
	ctx, span := r.startSpan(ctx, op,
		attribute.String("booking.id", bookingID),
		attribute.String("user.id", userID),
	)
	var participant model.BookingParticipant
	err := database.Preload(r.conn(ctx), preloads).
		Where("booking_id = ? AND user_id = ?", bookingID, userID).
		First(&participant).
		Error
	if err = endSpan(span, err, "get participant"); err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepository) Get(ctx context.Context, bookingID, userID string) (*model.BookingParticipant, error) {
	return r.get(ctx, "Get", bookingID, userID)
}

func (r *participantRepository) GetWithUser(ctx context.Context, bookingID, userID string) (*model.BookingParticipant, error) {
	return r.get(ctx, "GetWithUser", bookingID, userID, "User")
}

func (r *participantRepository) CountByBooking(ctx context.Context, bookingID string) (int64, error) {
	ctx, span := r.startSpan(ctx, "CountByBooking", attribute.String("booking.id", bookingID))
	var count int64
	err := r.conn(ctx).
		Model(&model.BookingParticipant{}).
		Where("booking_id = ?", bookingID).
		Count(&count).
		Error
	if err = endSpan(span, err, "count participants"); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *participantRepository) Delete(ctx context.Context, bookingID, userID string) error {
	ctx, span := r.startSpan(ctx, "Delete",
		attribute.String("booking.id", bookingID),
		attribute.String("user.id", userID),
	)
	result := r.conn(ctx).
		Where("booking_id = ? AND user_id = ?", bookingID, userID).
		Delete(&model.BookingParticipant{})
	err := result.Error
	if err == nil && result.RowsAffected == 0 {
		err = gorm.ErrRecordNotFound
	}
	return endSpan(span, err, "delete participant")
}

func (r *participantRepository) ListEndedBookingIDs(ctx context.Context, now time.Time) ([]string, error) {
	ctx, span := r.startSpan(ctx, "ListEndedBookingIDs", attribute.String("now", now.Format(time.RFC3339)))
	var ids []string
	err := r.conn(ctx).
		Model(&model.Booking{}).
		Where("end_time < ?", now).
		Where("EXISTS (SELECT 1 FROM booking_participants WHERE booking_participants.booking_id = bookings.id)").
		Pluck("id", &ids).
		Error
	if err = endSpan(span, err, "list ended bookings"); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *participantRepository) DeleteByBookingIDs(ctx context.Context, bookingIDs []string) (int64, error) {
	ctx, span := r.startSpan(ctx, "DeleteByBookingIDs", attribute.Int("bookings.count", len(bookingIDs)))
	if len(bookingIDs) == 0 {
		return 0, endSpan(span, nil, "")
	}

	result := r.conn(ctx).
		Where("booking_id IN ?", bookingIDs).
		Delete(&model.BookingParticipant{})
	if err := endSpan(span, result.Error, "delete participants"); err != nil {
		return 0, err
	}
	return result.RowsAffected, nil
}
