package service

import (
	"context"
	"log/slog"

	"netlife/internal/middleware"
	"netlife/internal/models"
	"netlife/internal/observability"
	"netlife/internal/repository"
	"netlife/internal/validation"
)

// ProfileView aggregates everything the profile page renders.
type ProfileView struct {
	Profile        *models.ProfilePage
	Posts          []*models.Post
	PostCount      int64
	FollowerCount  int64
	FollowingCount int64
	ButtonText     string
}

// SocialService handles the follow graph and profile aggregation.
type SocialService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	followRepo  repository.FollowRepository
	media       MediaSaver
}

// NewSocialService wires a SocialService.
func NewSocialService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	media MediaSaver,
) *SocialService {
	return &SocialService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,
		followRepo:  followRepo,
		media:       media,
	}
}

// ToggleFollow flips the actor's follow edge toward targetUsername and
// returns true when the call resulted in a follow.
func (s *SocialService) ToggleFollow(ctx context.Context, actorID uint, targetUsername string) (bool, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return false, err
	}
	if target == nil {
		return false, models.NewNotFoundError("User", targetUsername)
	}

	followed, err := s.followRepo.Toggle(ctx, actorID, target.ID)
	if err != nil {
		return false, err
	}

	action := "unfollowed"
	if followed {
		action = "followed"
	}
	observability.FollowTogglesTotal.WithLabelValues(action).Inc()
	middleware.Logger.InfoContext(ctx, "follow toggled",
		slog.String("action", action),
		slog.String("target", targetUsername))

	return followed, nil
}

// Profile aggregates the profile page for username as seen by viewerID:
// posts most-recent-first, post/follower/following counts and the
// Follow/Unfollow button label.
func (s *SocialService) Profile(ctx context.Context, username string, viewerID uint) (*ProfileView, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByUserID(ctx, profile.UserID, viewerID)
	if err != nil {
		return nil, err
	}

	followerCount, err := s.followRepo.CountFollowers(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.followRepo.CountFollowing(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	buttonText := "Follow"
	if viewerID != 0 {
		follows, err := s.followRepo.Exists(ctx, viewerID, profile.UserID)
		if err != nil {
			return nil, err
		}
		if follows {
			buttonText = "Unfollow"
		}
	}

	return &ProfileView{
		Profile:        profile,
		Posts:          posts,
		PostCount:      int64(len(posts)),
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
		ButtonText:     buttonText,
	}, nil
}

// Followers returns the edges pointing at username, for display.
func (s *SocialService) Followers(ctx context.Context, username string) ([]models.Follow, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, profile.UserID)
}

// Following returns the edges authored by username, for display.
func (s *SocialService) Following(ctx context.Context, username string) ([]models.Follow, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, profile.UserID)
}

// UpdateProfileInput carries a profile edit for one username.
type UpdateProfileInput struct {
	Username   string
	FirstName  string
	SecondName string
	Bio        string
	AvatarName string
	Avatar     []byte
}

// UpdateProfile applies a validated edit to an existing profile in place.
func (s *SocialService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.ProfilePage, validation.FieldErrors, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, nil, err
	}

	form := validation.ProfileForm{
		FirstName:  in.FirstName,
		SecondName: in.SecondName,
		Bio:        in.Bio,
		Avatar:     in.Avatar,
	}
	if fieldErrs := form.Validate(); fieldErrs.HasErrors() {
		return profile, fieldErrs, nil
	}

	profile.FirstName = form.FirstName
	profile.SecondName = form.SecondName
	profile.Bio = form.Bio
	if len(form.Avatar) > 0 {
		ref, err := s.media.SaveAvatar(in.AvatarName, form.Avatar)
		if err != nil {
			return nil, nil, models.NewInternalError(err)
		}
		profile.Avatar = ref
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, nil, err
	}
	return profile, nil, nil
}
