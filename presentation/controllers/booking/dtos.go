package booking

import (
	"time"

	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/domain/schedule"
	"github.com/hilthontt/roomly/presentation/controllers/auth"
)

type CreateBookingRequest struct {
	MeetingRoomID string    `json:"meetingRoomId" binding:"required,uuid"`
	StartTime     time.Time `json:"startTime" binding:"required"`
	EndTime       time.Time `json:"endTime" binding:"required"`
	Description   string    `json:"description" binding:"max=1000"`
}

type UpdateBookingRequest struct {
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
}

type RoomBookingsParam struct {
	RoomID string `uri:"roomId" binding:"required,uuid"`
}

type ParticipantResponse struct {
	ID       string             `json:"id"`
	UserID   string             `json:"userId"`
	User     *auth.UserResponse `json:"user,omitempty"`
	JoinedAt time.Time          `json:"joinedAt"`
}

type RoomSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID            string                `json:"id"`
	MeetingRoomID string                `json:"meetingRoomId"`
	MeetingRoom   *RoomSummary          `json:"meetingRoom,omitempty"`
	UserID        string                `json:"userId"`
	User          *auth.UserResponse    `json:"user,omitempty"`
	StartTime     time.Time             `json:"startTime"`
	EndTime       time.Time             `json:"endTime"`
	Description   string                `json:"description"`
	State         schedule.State        `json:"state"`
	Participants  []ParticipantResponse `json:"participants"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

type BookingMessageResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

type JoinResponse struct {
	Message     string              `json:"message"`
	Participant ParticipantResponse `json:"participant"`
}

func userResponse(u *model.User) *auth.UserResponse {
	if u == nil {
		return nil
	}
	resp := auth.ToUserResponse(u)
	return &resp
}

func ToParticipantResponse(p model.BookingParticipant) ParticipantResponse {
	return ParticipantResponse{
		ID:       p.ID,
		UserID:   p.UserID,
		User:     userResponse(p.User),
		JoinedAt: p.CreatedAt,
	}
}

// ToBookingResponse derives the lifecycle state at now.
func ToBookingResponse(b model.Booking, now time.Time) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID,
		MeetingRoomID: b.MeetingRoomID,
		UserID:        b.UserID,
		User:          userResponse(b.User),
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Description:   b.Description,
		State:         schedule.StateAt(schedule.Of(b), now),
		Participants:  make([]ParticipantResponse, 0, len(b.Participants)),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if b.MeetingRoom != nil {
		resp.MeetingRoom = &RoomSummary{ID: b.MeetingRoom.ID, Name: b.MeetingRoom.Name}
	}
	for _, p := range b.Participants {
		resp.Participants = append(resp.Participants, ToParticipantResponse(p))
	}
	return resp
}

func ToBookingResponses(bookings []model.Booking, now time.Time) []BookingResponse {
	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, ToBookingResponse(b, now))
	}
	return resp
}
