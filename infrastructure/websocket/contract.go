package websocket

import (
	"time"

	"github.com/hilthontt/roomly/infrastructure/events"
)

type WSMessage struct {
	Type      string `json:"type"`
	RoomID    string `json:"roomId"`
	Timestamp string `json:"timestamp,omitempty"`
	Data      any    `json:"data,omitempty"`
}

type EventPayload struct {
	EventID   string         `json:"eventId"`
	UserID    string         `json:"userId,omitempty"`
	BookingID string         `json:"bookingId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

type SubscribedPayload struct {
	ClientID string `json:"clientId"`
	UserID   string `json:"userId"`
}

func NewEventMessage(event events.Event) *WSMessage {
	return &WSMessage{
		Type:      string(event.Type),
		RoomID:    event.RoomID,
		Timestamp: event.Timestamp.Format(time.RFC3339),
		Data: EventPayload{
			EventID:   event.ID,
			UserID:    event.UserID,
			BookingID: event.BookingID,
			Data:      event.Data,
		},
	}
}

func NewSubscribed(cl *Client) *WSMessage {
	return &WSMessage{
		Type:   Subscribed,
		RoomID: cl.RoomID,
		Data: SubscribedPayload{
			ClientID: cl.ID,
			UserID:   cl.UserID,
		},
	}
}
