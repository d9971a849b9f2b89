package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is an image post published to the shared feed. Preview always equals
// MainImage at creation time; no thumbnailing happens in the request path.
type Post struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	UserID        uint    `gorm:"not null;index" json:"user_id"`
	User          User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	MainImage     string  `gorm:"size:255;not null" json:"main_image"`
	Preview       string  `gorm:"size:255;not null" json:"preview"`
	Description   string  `gorm:"type:text" json:"description"`
	Tags          []Tag   `gorm:"many2many:post_tags" json:"tags"`
	Likes         []User  `gorm:"many2many:post_likes" json:"-"`
	Images        []Image `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	DatePublished time.Time `json:"date_published"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Tag is a label shared across posts through the post_tags join table.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}
