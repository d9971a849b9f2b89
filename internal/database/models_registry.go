package database

import (
	"netlife/internal/models"

	"gorm.io/gorm"
)

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.ProfilePage{},
		&models.Post{},
		&models.Image{},
		&models.Tag{},
		&models.Follow{},
	}
}

// Migrate applies the schema for every registered model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(PersistentModels()...)
}
