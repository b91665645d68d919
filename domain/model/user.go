package model

type User struct {
	BaseModel

	Name         string `gorm:"type:VARCHAR(100);not null" json:"name"`
	Email        string `gorm:"type:VARCHAR(255);not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"type:VARCHAR(255);not null" json:"-"`
}

func (User) TableName() string { return "users" }
