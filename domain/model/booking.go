package model

import "time"

// Booking has no stored status; its lifecycle state is derived from
// StartTime, EndTime and the current instant.
type Booking struct {
	BaseModel

	MeetingRoomID string       `gorm:"type:uuid;not null;index:idx_booking_room_time,priority:1" json:"meetingRoomId"`
	MeetingRoom   *MeetingRoom `gorm:"foreignKey:MeetingRoomID" json:"meetingRoom,omitempty"`
	UserID        string       `gorm:"type:uuid;not null;index" json:"userId"`
	User          *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	StartTime   time.Time `gorm:"type:TIMESTAMP with time zone;not null;index:idx_booking_room_time,priority:2" json:"startTime"`
	EndTime     time.Time `gorm:"type:TIMESTAMP with time zone;not null;index" json:"endTime"`
	Description string    `gorm:"type:VARCHAR(1000);not null;default:''" json:"description,omitempty"`

	Participants []BookingParticipant `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
}

func (Booking) TableName() string { return "bookings" }
