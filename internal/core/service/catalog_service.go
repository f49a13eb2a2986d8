package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/emuhub/emuhub/internal/api/metrics"
	"github.com/emuhub/emuhub/internal/core/domain"
	"github.com/emuhub/emuhub/internal/core/ports"
)

// DefaultPageSize is applied when a listing request carries no usable limit.
const DefaultPageSize = 20

// CatalogService pages and groups the scanned game catalog. Every listing
// re-scans the directory tree; the catalog is derived state, never persisted.
type CatalogService struct {
	scanner  ports.Scanner
	registry *domain.Registry
	logger   zerolog.Logger
}

func NewCatalogService(scanner ports.Scanner, registry *domain.Registry, logger zerolog.Logger) *CatalogService {
	return &CatalogService{scanner: scanner, registry: registry, logger: logger}
}

// ListGames scans, slices the flat entry list by [offset, offset+limit), and
// groups the page by system. Grouping happens after paging, so one system's
// games may straddle a page boundary; clients merge sequential pages by
// system themselves.
func (s *CatalogService) ListGames(ctx context.Context, input ports.ListGamesInput) (*ports.GameListResult, error) {
	start := time.Now()

	label := "all"
	var entries []domain.GameEntry
	var err error
	if input.System != "" {
		// Restricting to one system avoids scanning every directory.
		label = input.System
		entries, err = s.scanner.Scan(ctx, input.System)
	} else {
		entries, err = s.scanner.ScanAll(ctx)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("system", label).Msg("catalog scan failed")
		return nil, err
	}

	metrics.CatalogScansTotal.WithLabelValues(label).Inc()
	metrics.CatalogScanDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	offset := input.Offset
	if offset < 0 {
		offset = 0
	}
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	total := len(entries)
	lo := offset
	if lo > total {
		lo = total
	}
	hi := lo + limit
	if hi > total {
		hi = total
	}

	return &ports.GameListResult{
		Groups: s.group(entries[lo:hi]),
		Pagination: ports.Pagination{
			Offset:  offset,
			Limit:   limit,
			Total:   total,
			HasMore: offset+limit < total,
		},
	}, nil
}

// group re-groups a page slice by system, preserving the first-seen order of
// systems within the page.
func (s *CatalogService) group(page []domain.GameEntry) []ports.SystemGroup {
	groups := make([]ports.SystemGroup, 0)
	index := make(map[string]int)

	for _, entry := range page {
		i, ok := index[entry.System]
		if !ok {
			desc, known := s.registry.Lookup(entry.System)
			if !known {
				continue
			}
			i = len(groups)
			index[entry.System] = i
			groups = append(groups, ports.SystemGroup{
				System:     desc.ID,
				SystemName: desc.Name,
				Icon:       desc.Icon,
				Color:      desc.Color,
				Games:      make([]ports.GameItem, 0, 1),
			})
		}
		groups[i].Games = append(groups[i].Games, ports.GameItem{
			Name: entry.Name,
			File: entry.File,
			Desc: entry.Desc,
			Size: entry.Size,
		})
	}
	return groups
}
