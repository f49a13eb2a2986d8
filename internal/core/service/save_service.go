package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/emuhub/emuhub/internal/api/metrics"
	"github.com/emuhub/emuhub/internal/core/domain"
	"github.com/emuhub/emuhub/internal/core/ports"
)

// SaveService persists save states through the blob store. The storage key
// (userId, systemId, gameName[, slot]) is the sole identity of a save; the
// last write to a key wins in full.
type SaveService struct {
	store  ports.BlobStore
	logger zerolog.Logger
}

func NewSaveService(store ports.BlobStore, logger zerolog.Logger) *SaveService {
	return &SaveService{store: store, logger: logger}
}

// Put overwrites the quick save for (userID, system, game).
func (s *SaveService) Put(ctx context.Context, userID, system, game string, state json.RawMessage) error {
	key, err := storageKey(userID, system, game, 0)
	if err != nil {
		return err
	}
	if err := s.write(ctx, key, state); err != nil {
		return err
	}
	metrics.SaveWritesTotal.WithLabelValues("state").Inc()
	s.logger.Info().Str("key", key).Msg("save state written")
	return nil
}

// Get returns the quick-save payload, or domain.ErrSaveNotFound when none
// exists.
func (s *SaveService) Get(ctx context.Context, userID, system, game string) (json.RawMessage, error) {
	key, err := storageKey(userID, system, game, 0)
	if err != nil {
		return nil, err
	}
	return s.read(ctx, key)
}

// SaveSlot overwrites one numbered slot.
func (s *SaveService) SaveSlot(ctx context.Context, userID, system, game string, slot int, state json.RawMessage) error {
	if slot < 1 || slot > domain.DefaultMaxSlots {
		return domain.ErrSlotOutOfRange
	}
	key, err := storageKey(userID, system, game, slot)
	if err != nil {
		return err
	}
	if err := s.write(ctx, key, state); err != nil {
		return err
	}
	metrics.SaveWritesTotal.WithLabelValues("slot").Inc()
	s.logger.Info().Str("key", key).Int("slot", slot).Msg("slot save written")
	return nil
}

// LoadSlot returns one numbered slot's payload.
func (s *SaveService) LoadSlot(ctx context.Context, userID, system, game string, slot int) (json.RawMessage, error) {
	if slot < 1 || slot > domain.DefaultMaxSlots {
		return nil, domain.ErrSlotOutOfRange
	}
	key, err := storageKey(userID, system, game, slot)
	if err != nil {
		return nil, err
	}
	return s.read(ctx, key)
}

// ListSlots probes slots 1..maxSlots and reports each one's condition. A slot
// file that exists but does not parse counts as empty: corruption degrades,
// it never fails the listing.
func (s *SaveService) ListSlots(ctx context.Context, userID, system, game string, maxSlots int) ([]domain.SlotInfo, error) {
	if maxSlots <= 0 {
		maxSlots = domain.DefaultMaxSlots
	}

	slots := make([]domain.SlotInfo, 0, maxSlots)
	for n := 1; n <= maxSlots; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key, err := storageKey(userID, system, game, n)
		if err != nil {
			return nil, err
		}

		info := domain.SlotInfo{Number: n}
		state, err := s.read(ctx, key)
		switch {
		case err == nil:
			info.HasSave = true
			info.Info = state
			metrics.SlotProbesTotal.WithLabelValues("occupied").Inc()
		case errors.Is(err, domain.ErrSaveNotFound):
			metrics.SlotProbesTotal.WithLabelValues("empty").Inc()
		case errors.Is(err, domain.ErrCorruptRecord):
			metrics.SlotProbesTotal.WithLabelValues("corrupt").Inc()
		default:
			return nil, err
		}
		slots = append(slots, info)
	}
	return slots, nil
}

func (s *SaveService) write(ctx context.Context, key string, state json.RawMessage) error {
	record := domain.SaveState{State: state, Timestamp: time.Now().UnixMilli()}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode save record: %w", err)
	}
	return s.store.Put(ctx, key, data)
}

func (s *SaveService) read(ctx context.Context, key string) (json.RawMessage, error) {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var record domain.SaveState
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, domain.ErrCorruptRecord)
	}
	return record.State, nil
}

// storageKey builds the blob-store key for a save. Identifiers are reduced to
// [A-Za-z0-9_-] and the game name to its base filename before any path is
// formed; a segment that sanitizes to nothing is a validation failure.
func storageKey(userID, system, game string, slot int) (string, error) {
	uid := domain.SanitizeID(userID)
	if uid == "" {
		return "", domain.NewValidationError("userId", "is required")
	}
	sys := domain.SanitizeID(system)
	if sys == "" {
		return "", domain.NewValidationError("system", "is required")
	}
	name := domain.SanitizeGameName(game)
	if name == "" {
		return "", domain.NewValidationError("gameName", "is required")
	}

	filename := name + ".json"
	if slot > 0 {
		filename = fmt.Sprintf("%s_slot%d.json", name, slot)
	}
	return uid + "/" + sys + "/" + filename, nil
}
