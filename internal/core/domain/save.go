package domain

import "encoding/json"

// SaveState is the on-disk record for one save: the opaque emulator payload
// plus the moment it was written (unix milliseconds). Last write wins; no
// history is kept.
type SaveState struct {
	State     json.RawMessage `json:"state"`
	Timestamp int64           `json:"timestamp"`
}

// SlotInfo reports the condition of one numbered save slot. A slot holding an
// unreadable record is indistinguishable from an empty one: HasSave is false
// and Info is nil.
type SlotInfo struct {
	Number  int             `json:"number"`
	HasSave bool            `json:"hasSave"`
	Info    json.RawMessage `json:"info"`
}

// DefaultMaxSlots bounds slot enumeration when the caller does not supply a
// limit.
const DefaultMaxSlots = 30
