package repository

import (
	"context"

	"github.com/hilthontt/roomly/domain/model"
)

type RoomRepository interface {
	Create(ctx context.Context, room *model.MeetingRoom) error
	GetByID(ctx context.Context, id string) (*model.MeetingRoom, error)
	// GetDetailed loads the creator, the members with their users and the
	// bookings ordered by start time with owners and participants.
	GetDetailed(ctx context.Context, id string) (*model.MeetingRoom, error)
	// GetAll returns every room, newest first, with creator, members and booking count.
	GetAll(ctx context.Context) ([]model.MeetingRoom, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	// LockByID reads the room with a row lock held until the surrounding
	// transaction ends.
	LockByID(ctx context.Context, id string) (*model.MeetingRoom, error)
}

type MembershipRepository interface {
	Create(ctx context.Context, membership *model.RoomMembership) error
	Get(ctx context.Context, roomID, userID string) (*model.RoomMembership, error)
	GetWithUser(ctx context.Context, roomID, userID string) (*model.RoomMembership, error)
	// ListByUser returns the user's memberships, newest first, with the room,
	// its creator and its booking count.
	ListByUser(ctx context.Context, userID string) ([]model.RoomMembership, error)
	UpdateRole(ctx context.Context, roomID, userID string, role model.Role) error
	Delete(ctx context.Context, roomID, userID string) error
}
