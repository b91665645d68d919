package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingParticipant is unique per (booking, user).
type BookingParticipant struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	BookingID string `gorm:"type:uuid;not null;uniqueIndex:idx_booking_user" json:"bookingId"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_booking_user;index" json:"userId"`
	User      *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"type:TIMESTAMP with time zone;not null" json:"createdAt"`
}

func (BookingParticipant) TableName() string { return "booking_participants" }

func (p *BookingParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return nil
}
