package entity

import "time"

// UserProfile holds per-identity account flags.
type UserProfile struct {
	UserID    string    `gorm:"primaryKey;type:varchar(128)" json:"user_id"`
	Premium   bool      `gorm:"not null;default:false" json:"premium"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
