package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sweetshop/api/internal/events"
	"github.com/sweetshop/api/internal/models"
	"github.com/sweetshop/api/internal/repo"
	"github.com/sweetshop/api/pkg/hash"
	"github.com/sweetshop/api/pkg/logging"
	"github.com/sweetshop/api/pkg/tokens"
)

type AuthService struct {
	Repo     *repo.GormRepo
	Secret   []byte
	TokenTTL time.Duration
	Producer *events.Producer
}

// Register creates the user with a hashed password and returns a freshly
// issued credential. Fails with repo.ErrEmailTaken on a duplicate email.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (string, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash password", "error", err)
		return "", nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
	}
	if err := s.Repo.CreateUserIfNew(ctx, user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			l.Warn("register_error", "reason", "email already registered")
		} else {
			l.Error("register_error", "error", err)
		}
		return "", nil, err
	}

	token, err := tokens.SignAccessToken(user.ID.String(), user.Role, s.TokenTTL, s.Secret)
	if err != nil {
		return "", nil, err
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	}); err != nil {
		l.Error("event publish failed", "error", err)
	}

	return token, user, nil
}

// Login verifies the credentials and issues a fresh bearer token. Unknown
// email and wrong password collapse into the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		l.Error("login_error", "error", err)
		return "", nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := tokens.SignAccessToken(user.ID.String(), user.Role, s.TokenTTL, s.Secret)
	if err != nil {
		return "", nil, err
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	}); err != nil {
		l.Error("event publish failed", "error", err)
	}

	return token, user, nil
}

// Me resolves an authenticated identity back to its user record.
func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.Repo.FindUserByID(ctx, id)
}
