package repository

import (
	"fmt"
	"testing"

	"netlife/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.ProfilePage{},
		&models.Post{},
		&models.Image{},
		&models.Tag{},
		&models.Follow{},
	)
	require.NoError(t, err)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hash",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, owner *models.User) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:    owner.ID,
		MainImage: "images/main.jpg",
		Preview:   "images/main.jpg",
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
