package repository

import (
	"context"
	"errors"

	"netlife/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines persistence operations for the follow graph.
type FollowRepository interface {
	// Toggle creates the edge when absent and deletes it when present.
	// Returns true when the call resulted in a follow.
	Toggle(ctx context.Context, followerID, followeeID uint) (followed bool, err error)
	Exists(ctx context.Context, followerID, followeeID uint) (bool, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
	ListFollowers(ctx context.Context, userID uint) ([]models.Follow, error)
	ListFollowing(ctx context.Context, userID uint) ([]models.Follow, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Toggle runs delete-then-insert in one transaction. The unique index on
// (follower_id, followee_id) turns a racing duplicate insert into a conflict
// instead of a second edge.
func (r *followRepository) Toggle(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var followed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&models.Follow{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected > 0 {
			return nil
		}

		edge := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
		if err := tx.Create(&edge).Error; err != nil {
			if isUniqueConstraintError(err) {
				// Concurrent toggle created the edge first.
				followed = true
				return nil
			}
			return models.NewInternalError(err)
		}
		followed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return followed, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var edge models.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("followee_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID uint) ([]models.Follow, error) {
	var edges []models.Follow
	err := r.db.WithContext(ctx).
		Preload("Follower").
		Where("followee_id = ?", userID).
		Find(&edges).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID uint) ([]models.Follow, error) {
	var edges []models.Follow
	err := r.db.WithContext(ctx).
		Preload("Followee").
		Where("follower_id = ?", userID).
		Find(&edges).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}
