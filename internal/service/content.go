package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"netlife/internal/middleware"
	"netlife/internal/models"
	"netlife/internal/observability"
	"netlife/internal/repository"
	"netlife/internal/validation"
)

// MediaSaver stores uploaded image bytes and returns the media reference.
type MediaSaver interface {
	SaveImage(originalName string, content []byte) (string, error)
	SaveAvatar(originalName string, content []byte) (string, error)
}

// GalleryFile is one extra image attached to a post beyond its main image.
type GalleryFile struct {
	Name    string
	Content []byte
}

// CreatePostInput is the full post creation payload. Owner, preview, publish
// timestamp and tag rows are computed here, never taken from the caller.
type CreatePostInput struct {
	OwnerID       uint
	MainImageName string
	MainImage     []byte
	Description   string
	Tags          []string
	Gallery       []GalleryFile
}

// ContentService handles post creation, feed and detail retrieval, and like
// toggling.
type ContentService struct {
	postRepo repository.PostRepository
	media    MediaSaver
	now      func() time.Time
}

// NewContentService wires a ContentService. now is the write-time clock used
// for publish timestamps.
func NewContentService(postRepo repository.PostRepository, media MediaSaver, now func() time.Time) *ContentService {
	if now == nil {
		now = time.Now
	}
	return &ContentService{postRepo: postRepo, media: media, now: now}
}

// CreatePost validates the input, stores the media files and persists the
// post with its gallery and tags in one transaction. A non-empty FieldErrors
// means nothing was persisted.
func (s *ContentService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, validation.FieldErrors, error) {
	form := validation.PostForm{
		MainImage:   in.MainImage,
		Description: in.Description,
		Tags:        in.Tags,
	}
	fieldErrs := form.Validate()

	gallery := make([][]byte, len(in.Gallery))
	for i, f := range in.Gallery {
		gallery[i] = f.Content
	}
	for field, msg := range validation.ValidateImageBatch(gallery) {
		fieldErrs[field] = msg
	}

	if fieldErrs.HasErrors() {
		return nil, fieldErrs, nil
	}

	mainRef, err := s.media.SaveImage(in.MainImageName, in.MainImage)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}

	post := &models.Post{
		UserID:      in.OwnerID,
		MainImage:   mainRef,
		Preview:     mainRef, // preview is an alias of the main image, no thumbnailing
		Description: form.Description,
		DatePublished: s.now(),
	}

	for _, f := range in.Gallery {
		ref, err := s.media.SaveImage(f.Name, f.Content)
		if err != nil {
			return nil, nil, models.NewInternalError(err)
		}
		post.Images = append(post.Images, models.Image{File: ref, Preview: ref})
	}

	if err := s.postRepo.Create(ctx, post, form.Tags); err != nil {
		return nil, nil, err
	}

	observability.PostsCreatedTotal.Inc()
	middleware.Logger.InfoContext(ctx, "post created",
		slog.Uint64("post_id", uint64(post.ID)),
		slog.Uint64("owner_id", uint64(in.OwnerID)),
		slog.Int("gallery_size", len(in.Gallery)))

	return post, nil, nil
}

// Feed returns all posts in reverse creation order, most recent first.
func (s *ContentService) Feed(ctx context.Context, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.ListFeed(ctx, currentUserID)
}

// GetPost returns one post with its gallery.
func (s *ContentService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

// ToggleLike flips the caller's like on a post and returns the new liked flag
// and the updated total.
func (s *ContentService) ToggleLike(ctx context.Context, userID, postID uint) (bool, int64, error) {
	liked, count, err := s.postRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		return false, 0, err
	}
	action := "unliked"
	if liked {
		action = "liked"
	}
	observability.LikeTogglesTotal.WithLabelValues(action).Inc()
	middleware.Logger.InfoContext(ctx, "like toggled",
		slog.String("action", action),
		slog.String("post_id", strconv.FormatUint(uint64(postID), 10)))
	return liked, count, nil
}

// Tags returns every tag in use, for the tag cloud shown on feed pages.
func (s *ContentService) Tags(ctx context.Context) ([]models.Tag, error) {
	return s.postRepo.ListTags(ctx)
}
