// Package service implements the application's domain logic on top of the
// repository layer.
package service

import (
	"context"
	"log/slog"
	"time"

	"netlife/internal/mailer"
	"netlife/internal/middleware"
	"netlife/internal/models"
	"netlife/internal/observability"
	"netlife/internal/repository"
	"netlife/internal/token"
	"netlife/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AccountService handles registration, activation, authentication and the
// lazy profile creation on first login.
type AccountService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	sender      mailer.Sender
	tokens      *token.ActivationMaker
	baseURL     string
	now         func() time.Time
}

// NewAccountService wires an AccountService. now is the write-time clock used
// for register dates.
func NewAccountService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	sender mailer.Sender,
	tokens *token.ActivationMaker,
	baseURL string,
	now func() time.Time,
) *AccountService {
	if now == nil {
		now = time.Now
	}
	return &AccountService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		sender:      sender,
		tokens:      tokens,
		baseURL:     baseURL,
		now:         now,
	}
}

// Register validates the form, creates an inactive user and dispatches the
// activation email. A non-empty FieldErrors means nothing was persisted.
// Email delivery failure is fatal to the registration flow.
func (s *AccountService) Register(ctx context.Context, form validation.RegistrationForm) (validation.FieldErrors, error) {
	fieldErrs := form.Validate()

	if _, taken := fieldErrs["username"]; !taken && form.Username != "" {
		existing, err := s.userRepo.GetByUsername(ctx, form.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			fieldErrs["username"] = "username is already taken"
		}
	}

	if fieldErrs.HasErrors() {
		observability.RegistrationsTotal.WithLabelValues("rejected").Inc()
		return fieldErrs, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: form.Username,
		Email:    form.Email,
		Password: string(hashed),
		IsActive: false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	activationToken, err := s.tokens.Make(user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	body, err := mailer.RenderActivation(mailer.ActivationEmail{
		Username: user.Username,
		BaseURL:  s.baseURL,
		UID:      token.EncodeUID(user.ID),
		Token:    activationToken,
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := s.sender.Send(ctx, user.Email, "Activate your user account", body); err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.ActivationEmailsTotal.Inc()
	observability.RegistrationsTotal.WithLabelValues("created").Inc()

	middleware.Logger.InfoContext(ctx, "user registered, pending activation",
		slog.String("username", user.Username))

	return nil, nil
}

// Activate consumes an activation link. Every failure mode collapses into the
// same invalid-token error so the response leaks nothing about account state.
// The token dies with the state change: once IsActive flips, its fingerprint
// no longer matches.
func (s *AccountService) Activate(ctx context.Context, encodedUID, tokenString string) error {
	id, err := token.DecodeUID(encodedUID)
	if err != nil {
		return models.NewInvalidTokenError()
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return models.NewInvalidTokenError()
	}

	if !s.tokens.Check(user, tokenString) {
		return models.NewInvalidTokenError()
	}

	user.IsActive = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	middleware.Logger.InfoContext(ctx, "account activated",
		slog.String("username", user.Username))
	return nil
}

// Authenticate checks credentials. Only active accounts may log in; every
// failure returns the same generic message so usernames cannot be probed.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, models.NewUnauthorizedError("Username or password is incorrect!")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Username or password is incorrect!")
	}
	return user, nil
}

// EnsureProfile creates the user's profile page on first login if it does not
// exist yet. Idempotent.
func (s *AccountService) EnsureProfile(ctx context.Context, userID uint) (*models.ProfilePage, error) {
	return s.profileRepo.EnsureForUser(ctx, userID, s.now())
}
