package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/emuhub/emuhub/internal/core/domain"
	"github.com/emuhub/emuhub/internal/core/ports"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// UserService implements registration and login over the user repository.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Register creates a new account and returns its opaque user id. The id is
// random; it cannot be derived from the username and leaks nothing about the
// password.
func (s *UserService) Register(ctx context.Context, username, password string) (string, error) {
	if len(username) < minUsernameLen {
		return "", domain.NewValidationError("username", "must be at least 3 characters")
	}
	if len(password) < minPasswordLen {
		return "", domain.NewValidationError("password", "must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		Username:     username,
		UserID:       "user_" + uuid.NewString(),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UnixMilli(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", err
	}

	s.logger.Info().Str("username", username).Str("user_id", user.UserID).Msg("user registered")
	return user.UserID, nil
}

// Login verifies the credentials and returns the account's user id. Unknown
// usernames and wrong passwords produce the same error, so responses cannot
// be used to enumerate accounts.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" {
		return "", domain.NewValidationError("username", "is required")
	}
	if password == "" {
		return "", domain.NewValidationError("password", "is required")
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}
	return user.UserID, nil
}
