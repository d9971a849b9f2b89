// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the NetLife application. Accounts are created
// inactive and become active once the activation link from the registration
// email is followed.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email     string         `gorm:"size:254;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	IsActive  bool           `gorm:"not null;default:false" json:"is_active"`
	Profile   *ProfilePage   `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Posts     []Post         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
