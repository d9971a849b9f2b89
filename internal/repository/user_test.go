package repository

import (
	"context"
	"testing"

	"netlife/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	fetched, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", fetched.Username)
	assert.False(t, fetched.IsActive, "new accounts start inactive")
}

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "alice", Email: "a@e.com", Password: "hash"}))

	err := repo.Create(ctx, &models.User{Username: "alice", Email: "other@e.com", Password: "hash"})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.ErrCodeValidation))
}

func TestUserRepository_GetByUsernameMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	// Absence is a normal outcome, not an error.
	user, err := repo.GetByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_GetByIDMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 12345)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.ErrCodeNotFound))
}

func TestUserRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	user.IsActive = false
	require.NoError(t, repo.Update(ctx, user))

	user.IsActive = true
	require.NoError(t, repo.Update(ctx, user))

	fetched, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsActive)
}
