package mocks

import (
	"context"

	"github.com/hilthontt/roomly/domain/model"
	"github.com/stretchr/testify/mock"
)

type RoomRepository struct {
	mock.Mock
}

func (m *RoomRepository) Create(ctx context.Context, room *model.MeetingRoom) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *RoomRepository) GetByID(ctx context.Context, id string) (*model.MeetingRoom, error) {
	args := m.Called(ctx, id)
	return roomOrNil(args.Get(0)), args.Error(1)
}

func (m *RoomRepository) GetDetailed(ctx context.Context, id string) (*model.MeetingRoom, error) {
	args := m.Called(ctx, id)
	return roomOrNil(args.Get(0)), args.Error(1)
}

func (m *RoomRepository) GetAll(ctx context.Context) ([]model.MeetingRoom, error) {
	args := m.Called(ctx)
	rooms, _ := args.Get(0).([]model.MeetingRoom)
	return rooms, args.Error(1)
}

func (m *RoomRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *RoomRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RoomRepository) LockByID(ctx context.Context, id string) (*model.MeetingRoom, error) {
	args := m.Called(ctx, id)
	return roomOrNil(args.Get(0)), args.Error(1)
}

func roomOrNil(v any) *model.MeetingRoom {
	if v == nil {
		return nil
	}
	return v.(*model.MeetingRoom)
}

type MembershipRepository struct {
	mock.Mock
}

func (m *MembershipRepository) Create(ctx context.Context, membership *model.RoomMembership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MembershipRepository) Get(ctx context.Context, roomID, userID string) (*model.RoomMembership, error) {
	args := m.Called(ctx, roomID, userID)
	return membershipOrNil(args.Get(0)), args.Error(1)
}

func (m *MembershipRepository) GetWithUser(ctx context.Context, roomID, userID string) (*model.RoomMembership, error) {
	args := m.Called(ctx, roomID, userID)
	return membershipOrNil(args.Get(0)), args.Error(1)
}

func (m *MembershipRepository) ListByUser(ctx context.Context, userID string) ([]model.RoomMembership, error) {
	args := m.Called(ctx, userID)
	memberships, _ := args.Get(0).([]model.RoomMembership)
	return memberships, args.Error(1)
}

func (m *MembershipRepository) UpdateRole(ctx context.Context, roomID, userID string, role model.Role) error {
	args := m.Called(ctx, roomID, userID, role)
	return args.Error(0)
}

func (m *MembershipRepository) Delete(ctx context.Context, roomID, userID string) error {
	args := m.Called(ctx, roomID, userID)
	return args.Error(0)
}

func membershipOrNil(v any) *model.RoomMembership {
	if v == nil {
		return nil
	}
	return v.(*model.RoomMembership)
}
