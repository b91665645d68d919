// Package access decides who may act on a meeting room.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/hilthontt/roomly/domain/apperror"
	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/domain/repository"
)

var (
	ErrRoomNotFound        = apperror.NotFound("meeting room not found")
	ErrNotRoomMember       = apperror.Forbidden("you do not have access to this room")
	ErrAdminRequired       = apperror.Forbidden("only room admins can perform this action")
	ErrCannotModifyCreator = apperror.InvalidState("the room creator cannot be removed or have their role changed")
	ErrCannotChangeOwnRole = apperror.InvalidState("you cannot change your own role")
)

type Gate interface {
	// RequireMember returns the caller's membership of any role.
	RequireMember(ctx context.Context, roomID, userID string) (*model.RoomMembership, error)
	// RequireAdmin fails with ErrNotRoomMember when there is no membership
	// and ErrAdminRequired when the role is not ADMIN.
	RequireAdmin(ctx context.Context, roomID, userID string) (*model.RoomMembership, error)
}

type gate struct {
	memberships repository.MembershipRepository
}

func NewGate(memberships repository.MembershipRepository) Gate {
	return &gate{memberships: memberships}
}

func (g *gate) RequireMember(ctx context.Context, roomID, userID string) (*model.RoomMembership, error) {
	membership, err := g.memberships.Get(ctx, roomID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotRoomMember
		}
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}
	return membership, nil
}

func (g *gate) RequireAdmin(ctx context.Context, roomID, userID string) (*model.RoomMembership, error) {
	membership, err := g.RequireMember(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if !membership.IsAdmin() {
		return nil, ErrAdminRequired
	}
	return membership, nil
}

func IsCreator(room model.MeetingRoom, userID string) bool {
	return room.IsCreator(userID)
}

// GuardMemberChange rejects removing or re-roling the room creator, and
// callers changing their own role.
func GuardMemberChange(room model.MeetingRoom, callerID, targetUserID string, roleChange bool) error {
	if IsCreator(room, targetUserID) {
		return ErrCannotModifyCreator
	}
	if roleChange && callerID == targetUserID {
		return ErrCannotChangeOwnRole
	}
	return nil
}
