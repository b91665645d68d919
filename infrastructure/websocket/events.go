package websocket

import "time"

const (
	Subscribed = "subscribed"

	ErrorEvent          = "error"
	AuthenticationError = "error.auth"

	RoomDeleted = "room.deleted"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)
