package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/emuhub/emuhub/internal/core/domain"
)

// userRecord is the on-disk shape of one user inside users.json, keyed by
// username. The password field holds the bcrypt hash, never the plaintext.
type userRecord struct {
	UserID    string `json:"userId"`
	Password  string `json:"password"`
	CreatedAt int64  `json:"createdAt"`
}

// UserRepository keeps the whole user table in a single pretty-printed JSON
// file. Every mutation re-reads and rewrites the file under one mutex, so
// concurrent registrations cannot lose each other.
type UserRepository struct {
	path string
	mu   sync.Mutex
}

func NewUserRepository(path string) *UserRepository {
	return &UserRepository{path: path}
}

// EnsureFile creates an empty user table when none exists yet.
func (r *UserRepository) EnsureFile() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", r.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create user table directory: %w", err)
	}
	return r.persist(map[string]userRecord{})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}
	rec, ok := users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{
		Username:     username,
		UserID:       rec.UserID,
		PasswordHash: rec.Password,
		CreatedAt:    rec.CreatedAt,
	}, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}
	if _, exists := users[user.Username]; exists {
		return domain.ErrUserExists
	}
	users[user.Username] = userRecord{
		UserID:    user.UserID,
		Password:  user.PasswordHash,
		CreatedAt: user.CreatedAt,
	}
	return r.persist(users)
}

// load reads the table. A missing file is an empty table. A file that exists
// but does not parse is a storage error, not an empty table: treating it as
// empty would let the next registration overwrite every account.
func (r *UserRepository) load() (map[string]userRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]userRecord{}, nil
		}
		return nil, fmt.Errorf("read user table: %w", err)
	}
	users := make(map[string]userRecord)
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse user table: %w", domain.ErrCorruptRecord)
	}
	return users, nil
}

func (r *UserRepository) persist(users map[string]userRecord) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user table: %w", err)
	}
	if err := writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("persist user table: %w", err)
	}
	return nil
}
