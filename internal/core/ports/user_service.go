package ports

import (
	"context"

	"github.com/emuhub/emuhub/internal/core/domain"
)

// UserRepository persists the user table.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when the username is
	// absent. Matching is case-sensitive.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create appends a new user, returning domain.ErrUserExists on a
	// duplicate username without touching the existing record.
	Create(ctx context.Context, user *domain.User) error
}

// UserService implements registration and login.
type UserService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}
