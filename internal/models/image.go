package models

// Image is an extra gallery picture attached to a post beyond its main image.
// Gallery rows are cascade-deleted with their post.
type Image struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	PostID  uint   `gorm:"not null;index" json:"post_id"`
	Post    Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	File    string `gorm:"size:255;not null" json:"file"`
	Preview string `gorm:"size:255;not null" json:"preview"`
}
