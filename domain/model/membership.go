package model

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

var validRoles = mapset.NewSet(RoleAdmin, RoleUser)

func (r Role) Valid() bool {
	return validRoles.Contains(r)
}

// RoomMembership is unique per (room, user).
type RoomMembership struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	MeetingRoomID string       `gorm:"type:uuid;not null;uniqueIndex:idx_room_user" json:"meetingRoomId"`
	MeetingRoom   *MeetingRoom `gorm:"foreignKey:MeetingRoomID" json:"meetingRoom,omitempty"`
	UserID        string       `gorm:"type:uuid;not null;uniqueIndex:idx_room_user;index" json:"userId"`
	User          *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Role          Role         `gorm:"type:VARCHAR(16);not null;default:USER" json:"role"`

	CreatedAt time.Time `gorm:"type:TIMESTAMP with time zone;not null" json:"createdAt"`
}

func (RoomMembership) TableName() string { return "room_memberships" }

func (m *RoomMembership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return nil
}

func (m RoomMembership) IsAdmin() bool {
	return m.Role == RoleAdmin
}
