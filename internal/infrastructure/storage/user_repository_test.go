package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emuhub/emuhub/internal/core/domain"
)

func newTestRepo(t *testing.T) (*UserRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	return NewUserRepository(path), path
}

func TestUserRepository_EnsureFile(t *testing.T) {
	repo, path := newTestRepo(t)

	if err := repo.EnsureFile(); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("table file missing: %v", err)
	}
	if strings.TrimSpace(string(data)) != "{}" {
		t.Fatalf("expected an empty table, got %s", data)
	}

	// Running it again must not clobber existing users.
	if err := repo.Create(context.Background(), &domain.User{Username: "alice", UserID: "user_1", PasswordHash: "hash"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.EnsureFile(); err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	if _, err := repo.FindByUsername(context.Background(), "alice"); err != nil {
		t.Fatalf("user lost after ensure: %v", err)
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	user := &domain.User{Username: "alice", UserID: "user_abc", PasswordHash: "$2a$10$hash", CreatedAt: 1700000000000}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.UserID != "user_abc" || got.PasswordHash != "$2a$10$hash" || got.CreatedAt != 1700000000000 {
		t.Fatalf("unexpected user: %+v", got)
	}

	// The table is keyed by username and stores the hash under "password".
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	var table map[string]map[string]any
	if err := json.Unmarshal(data, &table); err != nil {
		t.Fatalf("table is not valid JSON: %v", err)
	}
	if table["alice"]["password"] != "$2a$10$hash" {
		t.Fatalf("unexpected on-disk record: %v", table["alice"])
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Username: "alice", UserID: "user_1"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err := repo.Create(ctx, &domain.User{Username: "alice", UserID: "user_2"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	// The original record survives.
	got, err := repo.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.UserID != "user_1" {
		t.Fatalf("duplicate create replaced the record: %+v", got)
	}
}

func TestUserRepository_UnknownUsername(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.FindByUsername(context.Background(), "nobody")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_CorruptTable(t *testing.T) {
	repo, path := newTestRepo(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt table: %v", err)
	}

	_, err := repo.FindByUsername(context.Background(), "alice")
	if !errors.Is(err, domain.ErrCorruptRecord) {
		t.Fatalf("a corrupt table must surface an error, got %v", err)
	}
	if err := repo.Create(context.Background(), &domain.User{Username: "bob"}); !errors.Is(err, domain.ErrCorruptRecord) {
		t.Fatalf("create over a corrupt table must fail, got %v", err)
	}
}
