package repository

import (
	"context"

	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/domain/repository"
	"github.com/hilthontt/roomly/infrastructure/persistence/database"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const roomWithBookingCount = "meeting_rooms.*, (SELECT COUNT(*) FROM bookings WHERE bookings.meeting_room_id = meeting_rooms.id) AS booking_count"

func orderBookingsByStart(db *gorm.DB) *gorm.DB {
	return db.Order("bookings.start_time ASC")
}

type roomRepository struct {
	*BaseRepository[model.MeetingRoom]
}

func NewRoomRepository(db *gorm.DB, tracer trace.Tracer) repository.RoomRepository {
	return &roomRepository{
		BaseRepository: NewBaseRepository[model.MeetingRoom](db, tracer, "roomRepository",
			database.PreloadEntity{Entity: "CreatedBy"},
			database.PreloadEntity{Entity: "Members.User"},
			database.PreloadEntity{Entity: "Bookings", Conditions: []any{orderBookingsByStart}},
			database.PreloadEntity{Entity: "Bookings.User"},
			database.PreloadEntity{Entity: "Bookings.Participants.User"},
		),
	}
}

func (r *roomRepository) GetAll(ctx context.Context) ([]model.MeetingRoom, error) {
	ctx, span := r.startSpan(ctx, "GetAll")
	var rooms []model.MeetingRoom
	err := r.conn(ctx).
		Select(roomWithBookingCount).
		Preload("CreatedBy").
		Preload("Members.User").
		Order("meeting_rooms.created_at DESC").
		Find(&rooms).
		Error
	if err = endSpan(span, err, "list rooms"); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("rooms.count", len(rooms)))
	return rooms, nil
}

type membershipRepository struct {
	*BaseRepository[model.RoomMembership]
}

func NewMembershipRepository(db *gorm.DB, tracer trace.Tracer) repository.MembershipRepository {
	return &membershipRepository{
		BaseRepository: NewBaseRepository[model.RoomMembership](db, tracer, "membershipRepository"),
	}
}

func (r *membershipRepository) get(ctx context.Context, op, roomID, userID string, preloads ...string) (*model.RoomMembership, error) {
	ctx, span := r.startSpan(ctx, op,
		attribute.String("room.id", roomID),
		attribute.String("user.id", userID),
	)
	var membership model.RoomMembership
	err := database.Preload(r.conn(ctx), preloads).
		Where("meeting_room_id = ? AND user_id = ?", roomID, userID).
		First(&membership).
		Error
	if err = endSpan(span, err, "get membership"); err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *membershipRepository) Get(ctx context.Context, roomID, userID string) (*model.RoomMembership, error) {
	return r.get(ctx, "Get", roomID, userID)
}

func (r *membershipRepository) GetWithUser(ctx context.Context, roomID, userID string) (*model.RoomMembership, error) {
	return r.get(ctx, "GetWithUser", roomID, userID, "User")
}

func (r *membershipRepository) ListByUser(ctx context.Context, userID string) ([]model.RoomMembership, error) {
	ctx, span := r.startSpan(ctx, "ListByUser", attribute.String("user.id", userID))
	var memberships []model.RoomMembership
	err := r.conn(ctx).
		Preload("MeetingRoom", func(db *gorm.DB) *gorm.DB {
			return db.Select(roomWithBookingCount)
		}).
		Preload("MeetingRoom.CreatedBy").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&memberships).
		Error
	if err = endSpan(span, err, "list memberships"); err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *membershipRepository) UpdateRole(ctx context.Context, roomID, userID string, role model.Role) error {
	ctx, span := r.startSpan(ctx, "UpdateRole",
		attribute.String("room.id", roomID),
		attribute.String("user.id", userID),
		attribute.String("role", string(role)),
	)
	result := r.conn(ctx).
		Model(&model.RoomMembership{}).
		Where("meeting_room_id = ? AND user_id = ?", roomID, userID).
		Update("role", role)
	err := result.Error
	if err == nil && result.RowsAffected == 0 {
		err = gorm.ErrRecordNotFound
	}
	return endSpan(span, err, "update membership role")
}

func (r *membershipRepository) Delete(ctx context.Context, roomID, userID string) error {
	ctx, span := r.startSpan(ctx, "Delete",
		attribute.String("room.id", roomID),
		attribute.String("user.id", userID),
	)
	result := r.conn(ctx).
		Where("meeting_room_id = ? AND user_id = ?", roomID, userID).
		Delete(&model.RoomMembership{})
	err := result.Error
	if err == nil && result.RowsAffected == 0 {
		err = gorm.ErrRecordNotFound
	}
	return endSpan(span, err, "delete membership")
}
