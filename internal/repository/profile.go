package repository

import (
	"context"
	"errors"
	"time"

	"netlife/internal/cache"
	"netlife/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for profile pages.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.ProfilePage, error)
	GetByUsername(ctx context.Context, username string) (*models.ProfilePage, error)
	EnsureForUser(ctx context.Context, userID uint, registerDate time.Time) (*models.ProfilePage, error)
	Update(ctx context.Context, profile *models.ProfilePage) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.ProfilePage, error) {
	var profile models.ProfilePage
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("ProfilePage", userID)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

// GetByUsername is cached: the profile row is viewer-independent and every
// page render reads it for the layout. Update drops the cached entry.
func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*models.ProfilePage, error) {
	var profile models.ProfilePage
	err := cache.Aside(ctx, cache.ProfileKey(username), &profile, cache.ProfileTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("User").
			Joins("JOIN users ON users.id = profile_pages.user_id").
			Where("users.username = ?", username).
			First(&profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("ProfilePage", username)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

// EnsureForUser creates the profile on first login if absent. Idempotent: the
// unique index on user_id makes concurrent calls collapse to one row.
func (r *profileRepository) EnsureForUser(ctx context.Context, userID uint, registerDate time.Time) (*models.ProfilePage, error) {
	profile := models.ProfilePage{
		UserID:       userID,
		Avatar:       models.DefaultAvatar,
		RegisterDate: registerDate,
	}
	err := r.db.WithContext(ctx).
		Where(models.ProfilePage{UserID: userID}).
		Attrs(profile).
		FirstOrCreate(&profile).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			// Lost the race; the row exists now.
			return r.GetByUserID(ctx, userID)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.ProfilePage) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	if profile.User.Username != "" {
		cache.InvalidateProfile(ctx, profile.User.Username)
	}
	return nil
}
