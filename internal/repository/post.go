package repository

import (
	"context"
	"errors"

	"netlife/internal/cache"
	"netlife/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	// Create persists the post, its gallery images and its tag links in one
	// transaction. Tag rows are created on first use and shared across posts.
	Create(ctx context.Context, post *models.Post, tagNames []string) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	ListFeed(ctx context.Context, currentUserID uint) ([]*models.Post, error)
	ListByUserID(ctx context.Context, userID uint, currentUserID uint) ([]*models.Post, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
	ToggleLike(ctx context.Context, userID, postID uint) (liked bool, likeCount int64, err error)
	ListTags(ctx context.Context) ([]models.Tag, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails attaches the computed likes_count and liked columns to a
// post query. EXISTS scans cleanly into bool on both postgres and sqlite.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	return db.Select(
		"posts.*, "+
			"(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) AS likes_count, "+
			"EXISTS(SELECT 1 FROM post_likes WHERE post_likes.post_id = posts.id AND post_likes.user_id = ?) AS liked",
		currentUserID,
	)
}

func (r *postRepository) Create(ctx context.Context, post *models.Post, tagNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags := make([]models.Tag, 0, len(tagNames))
		for _, name := range tagNames {
			tag := models.Tag{Name: name}
			if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		post.Tags = tags
		// Post, gallery images and tag links all commit or none do.
		return tx.Create(post).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx, post.UserID)
	cache.InvalidateTagList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Images").
		Preload("Tags").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// ListFeed returns every post most-recent-first. Ordering is by id, the exact
// reverse of insertion order, not by timestamp: equal-timestamp inserts come
// back in reversed store order. The result is cached per viewer, since the
// liked flags are viewer-specific.
func (r *postRepository) ListFeed(ctx context.Context, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := cache.Aside(ctx, cache.FeedKey(currentUserID), &posts, cache.FeedTTL, func() error {
		return r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			Preload("Tags").
			Order("posts.id DESC").
			Find(&posts).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByUserID(ctx context.Context, userID uint, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Tags").
		Where("posts.user_id = ?", userID).
		Order("posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// ToggleLike removes the like when present, adds it otherwise, inside one
// transaction. The composite primary key on post_likes closes the
// check-then-act race: a concurrent duplicate insert fails instead of
// doubling the like.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, int64, error) {
	var liked bool
	var likeCount int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return models.NewInternalError(err)
		}

		res := tx.Exec("DELETE FROM post_likes WHERE post_id = ? AND user_id = ?", postID, userID)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			if err := tx.Exec("INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)", postID, userID).Error; err != nil {
				if isUniqueConstraintError(err) {
					// Concurrent toggle already inserted; treat as liked.
					liked = true
					return nil
				}
				return models.NewInternalError(err)
			}
			liked = true
		}

		return tx.Table("post_likes").Where("post_id = ?", postID).Count(&likeCount).Error
	})
	if err != nil {
		return false, 0, err
	}
	cache.InvalidateFeed(ctx, userID)
	return liked, likeCount, nil
}

func (r *postRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := cache.Aside(ctx, cache.TagListKey, &tags, cache.TagListTTL, func() error {
		return r.db.WithContext(ctx).Order("name").Find(&tags).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}
