package room

import (
	"time"

	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/presentation/controllers/auth"
	"github.com/hilthontt/roomly/presentation/controllers/booking"
)

type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type UpdateRoomRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

type AddMemberRequest struct {
	UserEmail string     `json:"userEmail" binding:"required,email"`
	Role      model.Role `json:"role" binding:"omitempty,oneof=ADMIN USER"`
}

type UpdateRoleRequest struct {
	Role model.Role `json:"role" binding:"required,oneof=ADMIN USER"`
}

type MemberParam struct {
	ID     string `uri:"id" binding:"required,uuid"`
	UserID string `uri:"userId" binding:"required,uuid"`
}

type MemberResponse struct {
	ID       string             `json:"id"`
	UserID   string             `json:"userId"`
	User     *auth.UserResponse `json:"user,omitempty"`
	Role     model.Role         `json:"role"`
	JoinedAt time.Time          `json:"joinedAt"`
}

type RoomResponse struct {
	ID           string                    `json:"id"`
	Name         string                    `json:"name"`
	Description  string                    `json:"description"`
	CreatedByID  string                    `json:"createdById"`
	CreatedBy    *auth.UserResponse        `json:"createdBy,omitempty"`
	Members      []MemberResponse          `json:"roomUsers"`
	Bookings     []booking.BookingResponse `json:"bookings,omitempty"`
	BookingCount int64                     `json:"bookingCount"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
}

// MyRoomResponse is a room seen through the caller's membership.
type MyRoomResponse struct {
	Role     model.Role   `json:"role"`
	JoinedAt time.Time    `json:"joinedAt"`
	Room     RoomResponse `json:"meetingRoom"`
}

type RoomMessageResponse struct {
	Message string       `json:"message"`
	Room    RoomResponse `json:"room"`
}

type MemberMessageResponse struct {
	Message string         `json:"message"`
	Member  MemberResponse `json:"roomUser"`
}

func userResponse(u *model.User) *auth.UserResponse {
	if u == nil {
		return nil
	}
	resp := auth.ToUserResponse(u)
	return &resp
}

func ToMemberResponse(m model.RoomMembership) MemberResponse {
	return MemberResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		User:     userResponse(m.User),
		Role:     m.Role,
		JoinedAt: m.CreatedAt,
	}
}

func ToRoomResponse(r model.MeetingRoom, now time.Time) RoomResponse {
	resp := RoomResponse{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		CreatedByID:  r.CreatedByID,
		CreatedBy:    userResponse(r.CreatedBy),
		Members:      make([]MemberResponse, 0, len(r.Members)),
		BookingCount: r.BookingCount,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	for _, m := range r.Members {
		resp.Members = append(resp.Members, ToMemberResponse(m))
	}
	if r.Bookings != nil {
		resp.Bookings = booking.ToBookingResponses(r.Bookings, now)
		resp.BookingCount = int64(len(r.Bookings))
	}
	return resp
}
