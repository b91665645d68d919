package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventRoomCreated       EventType = "room.created"
	EventRoomUpdated       EventType = "room.updated"
	EventRoomDeleted       EventType = "room.deleted"
	EventMemberAdded       EventType = "room.member_added"
	EventMemberRemoved     EventType = "room.member_removed"
	EventMemberRoleChanged EventType = "room.member_role_changed"

	EventBookingCreated EventType = "booking.created"
	EventBookingUpdated EventType = "booking.updated"
	EventBookingDeleted EventType = "booking.deleted"
	EventBookingJoined  EventType = "booking.joined"
	EventBookingLeft    EventType = "booking.left"

	EventParticipantsSwept EventType = "participants.swept"
)

type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	UserID    string         `json:"userId,omitempty"`
	RoomID    string         `json:"roomId,omitempty"`
	BookingID string         `json:"bookingId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

func NewEvent(eventType EventType, userID, roomID, bookingID string, data map[string]any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		RoomID:    roomID,
		BookingID: bookingID,
		Data:      data,
	}
}
