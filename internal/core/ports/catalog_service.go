package ports

import (
	"context"

	"github.com/emuhub/emuhub/internal/core/domain"
)

// Scanner produces the game catalog by walking ROM directories.
type Scanner interface {
	// Scan lists the games of one system. A missing or unreadable system
	// directory yields an empty result, not an error.
	Scan(ctx context.Context, systemID string) ([]domain.GameEntry, error)
	// ScanAll concatenates Scan over every registered system.
	ScanAll(ctx context.Context) ([]domain.GameEntry, error)
}

// ListGamesInput carries the paging parameters of a catalog listing. Offset
// and Limit are assumed already defaulted by the handler; System restricts
// the listing to a single platform when non-empty.
type ListGamesInput struct {
	Offset int
	Limit  int
	System string
}

// GameItem is one game inside a system group.
type GameItem struct {
	Name string `json:"name"`
	File string `json:"file"`
	Desc string `json:"desc"`
	Size int64  `json:"size"`
}

// SystemGroup is one platform's portion of a page, carrying the display
// fields of its descriptor.
type SystemGroup struct {
	System     string     `json:"system"`
	SystemName string     `json:"systemName"`
	Icon       string     `json:"icon"`
	Color      string     `json:"color"`
	Games      []GameItem `json:"games"`
}

// Pagination echoes the applied paging window back to the client.
type Pagination struct {
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

// GameListResult is one page of the catalog, grouped by system.
type GameListResult struct {
	Groups     []SystemGroup
	Pagination Pagination
}

// CatalogService lists the game catalog with paging and grouping.
type CatalogService interface {
	ListGames(ctx context.Context, input ListGamesInput) (*GameListResult, error)
}
