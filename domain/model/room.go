package model

type MeetingRoom struct {
	BaseModel

	Name        string `gorm:"type:VARCHAR(100);not null" json:"name"`
	Description string `gorm:"type:VARCHAR(500);not null;default:''" json:"description,omitempty"`

	CreatedByID string `gorm:"type:uuid;not null;index" json:"createdById"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"createdBy,omitempty"`

	Members  []RoomMembership `gorm:"foreignKey:MeetingRoomID;constraint:OnDelete:CASCADE" json:"roomUsers,omitempty"`
	Bookings []Booking        `gorm:"foreignKey:MeetingRoomID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`

	// Filled by list queries only.
	BookingCount int64 `gorm:"->;-:migration" json:"bookingCount"`
}

func (MeetingRoom) TableName() string { return "meeting_rooms" }

func (r MeetingRoom) IsCreator(userID string) bool {
	return r.CreatedByID == userID
}
