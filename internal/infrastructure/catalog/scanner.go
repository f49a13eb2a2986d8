package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emuhub/emuhub/internal/core/domain"
)

// indexExtensions are referenced by disc images but never represent a game on
// their own: a .cue indexes .bin tracks, a .mds indexes an .mdf image.
var indexExtensions = map[string]bool{
	".cue": true,
	".mds": true,
}

// Scanner walks one directory per system under the ROM root and classifies
// files by extension. Scans read the filesystem fresh on every call; nothing
// is cached between requests.
type Scanner struct {
	registry *domain.Registry
	romsDir  string
	logger   zerolog.Logger
}

func NewScanner(registry *domain.Registry, romsDir string, logger zerolog.Logger) *Scanner {
	return &Scanner{registry: registry, romsDir: romsDir, logger: logger}
}

// Scan lists the games of one system, sorted by name. An unknown system id or
// a missing system directory yields an empty result.
func (s *Scanner) Scan(ctx context.Context, systemID string) ([]domain.GameEntry, error) {
	desc, ok := s.registry.Lookup(systemID)
	if !ok {
		return nil, nil
	}
	return s.scanSystem(ctx, desc)
}

// ScanAll concatenates Scan over every registered system, sorted by
// (system, name) so pagination over the result is deterministic.
func (s *Scanner) ScanAll(ctx context.Context) ([]domain.GameEntry, error) {
	var all []domain.GameEntry
	for _, desc := range s.registry.All() {
		games, err := s.scanSystem(ctx, desc)
		if err != nil {
			return nil, err
		}
		all = append(all, games...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].System != all[j].System {
			return all[i].System < all[j].System
		}
		return all[i].Name < all[j].Name
	})
	return all, nil
}

func (s *Scanner) scanSystem(ctx context.Context, desc domain.SystemDescriptor) ([]domain.GameEntry, error) {
	dir := filepath.Join(s.romsDir, desc.ID)

	entries, err := os.ReadDir(dir)
	if err != nil {
		// A system without a folder simply has no games. Anything else
		// (permissions, transient I/O) degrades that one system the same
		// way rather than failing the whole listing.
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("system", desc.ID).Msg("system directory unreadable, skipping")
		}
		return nil, nil
	}

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			present[e.Name()] = true
		}
	}

	descriptions := loadGamelist(dir)

	seen := make(map[string]bool)
	var games []domain.GameEntry
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() {
			continue
		}

		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !desc.Recognizes(name) {
			continue
		}
		// Index files never stand for a game themselves.
		if indexExtensions[ext] {
			continue
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if seen[stem] {
			continue
		}
		seen[stem] = true

		// A raw .bin with a sibling .cue is loaded through the .cue. An
		// .mdf keeps itself as primary; its .mds is informational only.
		primary := name
		if ext == ".bin" && present[stem+".cue"] {
			primary = stem + ".cue"
		}

		var size int64
		if info, err := os.Stat(filepath.Join(dir, primary)); err == nil {
			size = info.Size()
		}

		games = append(games, domain.GameEntry{
			System: desc.ID,
			Name:   stem,
			File:   primary,
			Desc:   s.description(dir, stem, descriptions),
			Size:   size,
		})
	}

	sort.Slice(games, func(i, j int) bool { return games[i].Name < games[j].Name })
	return games, nil
}

// sidecar is the optional per-game metadata file <stem>.json.
type sidecar struct {
	Description string `json:"description"`
}

// description resolves a game's description: the JSON sidecar wins, then the
// system's gamelist.xml, then empty. A missing or malformed source is never
// an error.
func (s *Scanner) description(dir, stem string, gamelist map[string]string) string {
	data, err := os.ReadFile(filepath.Join(dir, stem+".json"))
	if err == nil {
		var sc sidecar
		if json.Unmarshal(data, &sc) == nil && sc.Description != "" {
			return sc.Description
		}
	}
	return gamelist[stem]
}
