package domain

import (
	"path/filepath"
	"strings"
)

// SystemDescriptor describes one emulated platform: its short id, display
// fields presented to the client, and the file extensions recognised as ROMs
// for that platform. Descriptors are immutable after construction.
type SystemDescriptor struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Icon       string   `json:"icon"`
	Color      string   `json:"color"`
	Extensions []string `json:"extensions"`
}

// Recognizes reports whether filename carries one of the descriptor's
// extensions. The comparison is case-insensitive; extensions on descriptors
// are stored lowercase with a leading dot.
func (d SystemDescriptor) Recognizes(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range d.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Registry is the process-wide table of supported systems. It is built once
// at startup and shared read-only; lookups never mutate it.
type Registry struct {
	descriptors []SystemDescriptor
	byID        map[string]SystemDescriptor
}

// NewRegistry builds a Registry from the given descriptors, preserving their
// order for listing. Duplicate ids keep the first occurrence.
func NewRegistry(descriptors []SystemDescriptor) *Registry {
	r := &Registry{
		descriptors: make([]SystemDescriptor, 0, len(descriptors)),
		byID:        make(map[string]SystemDescriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, exists := r.byID[d.ID]; exists {
			continue
		}
		r.descriptors = append(r.descriptors, d)
		r.byID[d.ID] = d
	}
	return r
}

// Lookup returns the descriptor for id. Unknown ids are not an error; callers
// skip them.
func (r *Registry) Lookup(id string) (SystemDescriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// All returns the descriptors in registration order. The returned slice must
// not be modified.
func (r *Registry) All() []SystemDescriptor {
	return r.descriptors
}

// DefaultSystems returns the built-in platform table.
func DefaultSystems() []SystemDescriptor {
	return []SystemDescriptor{
		// Nintendo
		{ID: "nes", Name: "Nintendo NES", Icon: "🎮", Color: "#E60012", Extensions: []string{".nes", ".zip"}},
		{ID: "snes", Name: "Super Nintendo", Icon: "🎮", Color: "#0070CC", Extensions: []string{".sfc", ".smc", ".zip"}},
		{ID: "n64", Name: "Nintendo 64", Icon: "🎮", Color: "#00BCF2", Extensions: []string{".n64", ".z64", ".v64", ".zip"}},
		{ID: "nds", Name: "Nintendo DS", Icon: "🎮", Color: "#D12228", Extensions: []string{".nds", ".zip"}},
		{ID: "gba", Name: "Game Boy Advance", Icon: "🎮", Color: "#5E317C", Extensions: []string{".gba", ".zip"}},
		{ID: "gb", Name: "Game Boy", Icon: "🎮", Color: "#8B8B8B", Extensions: []string{".gb", ".gbc", ".zip"}},
		{ID: "vb", Name: "Virtual Boy", Icon: "🎮", Color: "#FF0000", Extensions: []string{".vb", ".zip"}},

		// Sega
		{ID: "segaMD", Name: "Sega Mega Drive", Icon: "🎮", Color: "#0089CF", Extensions: []string{".md", ".bin", ".gen", ".zip"}},
		{ID: "segaMS", Name: "Sega Master System", Icon: "🎮", Color: "#FF6B00", Extensions: []string{".sms", ".zip"}},
		{ID: "segaGG", Name: "Sega Game Gear", Icon: "🎮", Color: "#4B0082", Extensions: []string{".gg", ".zip"}},
		{ID: "segaCD", Name: "Sega CD", Icon: "🎮", Color: "#0089CF", Extensions: []string{".bin", ".cue", ".iso", ".zip"}},
		{ID: "sega32x", Name: "Sega 32X", Icon: "🎮", Color: "#1E90FF", Extensions: []string{".32x", ".bin", ".zip"}},
		{ID: "segaSaturn", Name: "Sega Saturn", Icon: "🎮", Color: "#4169E1", Extensions: []string{".bin", ".cue", ".iso", ".zip"}},

		// Sony
		{ID: "psx", Name: "PlayStation", Icon: "🎮", Color: "#003791", Extensions: []string{".iso", ".bin", ".cue", ".zip"}},
		{ID: "psp", Name: "PlayStation Portable", Icon: "🎮", Color: "#0070D1", Extensions: []string{".iso", ".cso", ".zip"}},

		// Atari
		{ID: "atari2600", Name: "Atari 2600", Icon: "🎮", Color: "#D84F2C", Extensions: []string{".a26", ".bin", ".zip"}},
		{ID: "atari5200", Name: "Atari 5200", Icon: "🎮", Color: "#FF6347", Extensions: []string{".a52", ".bin", ".zip"}},
		{ID: "atari7800", Name: "Atari 7800", Icon: "🎮", Color: "#CD5C5C", Extensions: []string{".a78", ".bin", ".zip"}},
		{ID: "lynx", Name: "Atari Lynx", Icon: "🎮", Color: "#FF8C00", Extensions: []string{".lnx", ".zip"}},
		{ID: "jaguar", Name: "Atari Jaguar", Icon: "🎮", Color: "#DC143C", Extensions: []string{".j64", ".jag", ".zip"}},

		// Commodore
		{ID: "c64", Name: "Commodore 64", Icon: "💻", Color: "#8B4513", Extensions: []string{".d64", ".t64", ".prg", ".zip"}},
		{ID: "c128", Name: "Commodore 128", Icon: "💻", Color: "#A0522D", Extensions: []string{".d64", ".t64", ".prg", ".zip"}},
		{ID: "amiga", Name: "Commodore Amiga", Icon: "💻", Color: "#CD853F", Extensions: []string{".adf", ".adz", ".dms", ".zip"}},
		{ID: "vic20", Name: "Commodore VIC-20", Icon: "💻", Color: "#D2691E", Extensions: []string{".prg", ".zip"}},

		// Other
		{ID: "arcade", Name: "Arcade", Icon: "🕹️", Color: "#FFD700", Extensions: []string{".zip"}},
		{ID: "mame2003", Name: "MAME 2003", Icon: "🕹️", Color: "#FFA500", Extensions: []string{".zip"}},
		{ID: "3do", Name: "3DO", Icon: "🎮", Color: "#9370DB", Extensions: []string{".iso", ".bin", ".cue", ".zip"}},
		{ID: "coleco", Name: "ColecoVision", Icon: "🎮", Color: "#4682B4", Extensions: []string{".col", ".zip"}},
	}
}
