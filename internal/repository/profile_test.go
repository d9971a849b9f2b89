package repository

import (
	"context"
	"testing"
	"time"

	"netlife/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_EnsureForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")

	registered := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	profile, err := repo.EnsureForUser(ctx, user.ID, registered)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, models.DefaultAvatar, profile.Avatar)

	// Second call is a no-op returning the same row.
	again, err := repo.EnsureForUser(ctx, user.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.ProfilePage{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProfileRepository_GetByUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")

	_, err := repo.EnsureForUser(ctx, user.ID, time.Now())
	require.NoError(t, err)

	profile, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, "alice", profile.User.Username)

	_, err = repo.GetByUsername(ctx, "nobody")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.ErrCodeNotFound))
}

func TestProfileRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")

	profile, err := repo.EnsureForUser(ctx, user.ID, time.Now())
	require.NoError(t, err)

	profile.FirstName = "Alice"
	profile.SecondName = "Cooper"
	profile.Bio = "hello"
	require.NoError(t, repo.Update(ctx, profile))

	fetched, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", fetched.FirstName)
	assert.Equal(t, "Cooper", fetched.SecondName)
	assert.Equal(t, "hello", fetched.Bio)
}
