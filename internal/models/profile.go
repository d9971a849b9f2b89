package models

import "time"

// DefaultAvatar is the media reference assigned to profiles created lazily on
// first login, before the owner uploads an avatar of their own.
const DefaultAvatar = "avatars/default_avatar.jpg"

// ProfilePage holds the public-facing profile of a user. Exactly one profile
// exists per user; it is created lazily on first login. The unique index on
// UserID is what enforces the one-to-one shape.
type ProfilePage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	FirstName    string    `gorm:"size:50" json:"first_name"`
	SecondName   string    `gorm:"size:50" json:"second_name"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Avatar       string    `gorm:"size:255" json:"avatar"`
	RegisterDate time.Time `json:"register_date"`
}

// TableName specifies the table name for GORM.
func (ProfilePage) TableName() string {
	return "profile_pages"
}
