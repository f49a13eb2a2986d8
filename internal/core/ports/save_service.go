package ports

import (
	"context"
	"encoding/json"

	"github.com/emuhub/emuhub/internal/core/domain"
)

// BlobStore is a key-value abstraction over the save storage. Keys are
// slash-separated relative paths; the backing implementation maps them onto
// the filesystem today and could be swapped for an embedded engine without
// touching callers.
type BlobStore interface {
	// Get returns the blob at key, or domain.ErrSaveNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes the blob at key, creating parent namespaces as needed.
	// Writes to the same key are serialized; last write wins in full.
	Put(ctx context.Context, key string, data []byte) error
	// Delete removes the blob at key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
	// List returns the keys under prefix, in lexicographic order.
	List(ctx context.Context, prefix string) ([]string, error)
}

// SaveService persists per-user, per-game save states and numbered slots.
type SaveService interface {
	Put(ctx context.Context, userID, system, game string, state json.RawMessage) error
	Get(ctx context.Context, userID, system, game string) (json.RawMessage, error)
	SaveSlot(ctx context.Context, userID, system, game string, slot int, state json.RawMessage) error
	LoadSlot(ctx context.Context, userID, system, game string, slot int) (json.RawMessage, error)
	ListSlots(ctx context.Context, userID, system, game string, maxSlots int) ([]domain.SlotInfo, error)
}
