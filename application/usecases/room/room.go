package room

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hilthontt/roomly/application/usecases/access"
	"github.com/hilthontt/roomly/application/usecases/cleanup"
	"github.com/hilthontt/roomly/domain/apperror"
	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/domain/repository"
	"github.com/hilthontt/roomly/infrastructure/events"
	"github.com/hilthontt/roomly/infrastructure/logger"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound   = apperror.NotFound("user with this email not found")
	ErrAlreadyMember  = apperror.Conflict("user is already in this room")
	ErrMemberNotFound = apperror.NotFound("user is not a member of this room")
	ErrInvalidRole    = apperror.Validation("role must be ADMIN or USER")
)

type CreateInput struct {
	Name        string
	Description string
}

type UpdateInput struct {
	Name        *string
	Description *string
}

type AddMemberInput struct {
	UserEmail string
	Role      model.Role
}

type RoomUseCase interface {
	GetAll(ctx context.Context) ([]model.MeetingRoom, error)
	ListMine(ctx context.Context, userID string) ([]model.RoomMembership, error)
	GetByID(ctx context.Context, roomID string) (*model.MeetingRoom, error)
	Create(ctx context.Context, callerID string, input CreateInput) (*model.MeetingRoom, error)
	Update(ctx context.Context, callerID, roomID string, input UpdateInput) (*model.MeetingRoom, error)
	Delete(ctx context.Context, callerID, roomID string) error
	AddMember(ctx context.Context, callerID, roomID string, input AddMemberInput) (*model.RoomMembership, error)
	UpdateMemberRole(ctx context.Context, callerID, roomID, targetUserID string, role model.Role) (*model.RoomMembership, error)
	RemoveMember(ctx context.Context, callerID, roomID, targetUserID string) error
	// RequireMember gates read access to the room's live feed.
	RequireMember(ctx context.Context, callerID, roomID string) error
}

type roomUseCase struct {
	rooms          repository.RoomRepository
	memberships    repository.MembershipRepository
	users          repository.UserRepository
	transactor     repository.Transactor
	gate           access.Gate
	sweeper        cleanup.Sweeper
	eventPublisher events.Publisher
	logger         *logger.Logger
}

func NewRoomUseCase(
	rooms repository.RoomRepository,
	memberships repository.MembershipRepository,
	users repository.UserRepository,
	transactor repository.Transactor,
	gate access.Gate,
	sweeper cleanup.Sweeper,
	eventPublisher events.Publisher,
	logger *logger.Logger,
) RoomUseCase {
	return &roomUseCase{
		rooms:          rooms,
		memberships:    memberships,
		users:          users,
		transactor:     transactor,
		gate:           gate,
		sweeper:        sweeper,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (uc *roomUseCase) GetAll(ctx context.Context) ([]model.MeetingRoom, error) {
	rooms, err := uc.rooms.GetAll(ctx)
	if err != nil {
		uc.logger.Error("failed to get rooms", zap.Error(err))
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}
	return rooms, nil
}

func (uc *roomUseCase) ListMine(ctx context.Context, userID string) ([]model.RoomMembership, error) {
	memberships, err := uc.memberships.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Error("failed to get user rooms", zap.Error(err), zap.String("userID", userID))
		return nil, fmt.Errorf("failed to get user rooms: %w", err)
	}
	return memberships, nil
}

func (uc *roomUseCase) GetByID(ctx context.Context, roomID string) (*model.MeetingRoom, error) {
	uc.sweeper.Sweep(ctx)
	return uc.load(ctx, roomID)
}

func (uc *roomUseCase) Create(ctx context.Context, callerID string, input CreateInput) (*model.MeetingRoom, error) {
	room := &model.MeetingRoom{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		CreatedByID: callerID,
	}

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.rooms.Create(ctx, room); err != nil {
			return fmt.Errorf("failed to create room: %w", err)
		}
		if err := uc.memberships.Create(ctx, &model.RoomMembership{
			MeetingRoomID: room.ID,
			UserID:        callerID,
			Role:          model.RoleAdmin,
		}); err != nil {
			return fmt.Errorf("failed to add room creator: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("failed to create room", zap.Error(err), zap.String("userID", callerID))
		return nil, err
	}

	uc.logger.Info("room created", zap.String("roomID", room.ID), zap.String("userID", callerID))
	uc.publish(ctx, events.EventRoomCreated, callerID, room.ID, map[string]any{"name": room.Name})

	return uc.load(ctx, room.ID)
}

func (uc *roomUseCase) Update(ctx context.Context, callerID, roomID string, input UpdateInput) (*model.MeetingRoom, error) {
	if _, err := uc.gate.RequireAdmin(ctx, roomID, callerID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}

	if len(fields) > 0 {
		if err := uc.rooms.Update(ctx, roomID, fields); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, access.ErrRoomNotFound
			}
			return nil, fmt.Errorf("failed to update room: %w", err)
		}
		uc.publish(ctx, events.EventRoomUpdated, callerID, roomID, fields)
	}

	return uc.load(ctx, roomID)
}

func (uc *roomUseCase) Delete(ctx context.Context, callerID, roomID string) error {
	if _, err := uc.gate.RequireAdmin(ctx, roomID, callerID); err != nil {
		return err
	}

	if err := uc.rooms.Delete(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return access.ErrRoomNotFound
		}
		return fmt.Errorf("failed to delete room: %w", err)
	}

	uc.logger.Info("room deleted", zap.String("roomID", roomID), zap.String("userID", callerID))
	uc.publish(ctx, events.EventRoomDeleted, callerID, roomID, nil)
	return nil
}

func (uc *roomUseCase) AddMember(ctx context.Context, callerID, roomID string, input AddMemberInput) (*model.RoomMembership, error) {
	if _, err := uc.gate.RequireAdmin(ctx, roomID, callerID); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := uc.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.UserEmail)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := uc.memberships.Get(ctx, roomID, user.ID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	err = uc.memberships.Create(ctx, &model.RoomMembership{
		MeetingRoomID: roomID,
		UserID:        user.ID,
		Role:          role,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrAlreadyMember
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	uc.logger.Info("member added",
		zap.String("roomID", roomID),
		zap.String("userID", user.ID),
		zap.String("role", string(role)),
	)
	uc.publish(ctx, events.EventMemberAdded, callerID, roomID, map[string]any{
		"memberId": user.ID,
		"role":     role,
	})

	return uc.membership(ctx, roomID, user.ID)
}

func (uc *roomUseCase) UpdateMemberRole(ctx context.Context, callerID, roomID, targetUserID string, role model.Role) (*model.RoomMembership, error) {
	if _, err := uc.gate.RequireAdmin(ctx, roomID, callerID); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	room, err := uc.find(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := access.GuardMemberChange(*room, callerID, targetUserID, true); err != nil {
		return nil, err
	}

	if err := uc.memberships.UpdateRole(ctx, roomID, targetUserID, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}

	uc.publish(ctx, events.EventMemberRoleChanged, callerID, roomID, map[string]any{
		"memberId": targetUserID,
		"role":     role,
	})
	return uc.membership(ctx, roomID, targetUserID)
}

func (uc *roomUseCase) RemoveMember(ctx context.Context, callerID, roomID, targetUserID string) error {
	if _, err := uc.gate.RequireAdmin(ctx, roomID, callerID); err != nil {
		return err
	}

	room, err := uc.find(ctx, roomID)
	if err != nil {
		return err
	}
	if err := access.GuardMemberChange(*room, callerID, targetUserID, false); err != nil {
		return err
	}

	if err := uc.memberships.Delete(ctx, roomID, targetUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to remove member: %w", err)
	}

	uc.publish(ctx, events.EventMemberRemoved, callerID, roomID, map[string]any{"memberId": targetUserID})
	return nil
}

func (uc *roomUseCase) RequireMember(ctx context.Context, callerID, roomID string) error {
	_, err := uc.gate.RequireMember(ctx, roomID, callerID)
	return err
}

func (uc *roomUseCase) find(ctx context.Context, roomID string) (*model.MeetingRoom, error) {
	room, err := uc.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, access.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

func (uc *roomUseCase) load(ctx context.Context, roomID string) (*model.MeetingRoom, error) {
	room, err := uc.rooms.GetDetailed(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, access.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

func (uc *roomUseCase) membership(ctx context.Context, roomID, userID string) (*model.RoomMembership, error) {
	membership, err := uc.memberships.GetWithUser(ctx, roomID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return membership, nil
}

func (uc *roomUseCase) publish(ctx context.Context, eventType events.EventType, callerID, roomID string, data map[string]any) {
	uc.eventPublisher.Publish(ctx, events.NewEvent(eventType, callerID, roomID, "", data))
}
