package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/emuhub/emuhub/internal/core/ports"
	"github.com/emuhub/emuhub/internal/core/service"
)

// CatalogHandler handles HTTP requests for game listing.
type CatalogHandler struct {
	service     ports.CatalogService
	scanTimeout time.Duration
}

func NewCatalogHandler(svc ports.CatalogService, scanTimeout time.Duration) *CatalogHandler {
	return &CatalogHandler{service: svc, scanTimeout: scanTimeout}
}

type listGamesResponse struct {
	Games      []ports.SystemGroup `json:"games"`
	Pagination ports.Pagination    `json:"pagination"`
}

// ListGames handles GET /api/list-games.
//
// @Summary      List games, paginated and grouped by system
// @Tags         catalog
// @Produce      json
// @Param        offset  query     int     false  "First entry of the page (default 0)"
// @Param        limit   query     int     false  "Page size (default 20)"
// @Param        system  query     string  false  "Restrict the listing to one system id"
// @Success      200     {object}  listGamesResponse
// @Failure      500     {object}  map[string]string
// @Failure      503     {object}  map[string]string
// @Router       /api/list-games [get]
func (h *CatalogHandler) ListGames(c echo.Context) error {
	ctx := c.Request().Context()
	if h.scanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.scanTimeout)
		defer cancel()
	}

	result, err := h.service.ListGames(ctx, ports.ListGamesInput{
		Offset: intParam(c.QueryParam("offset"), 0),
		Limit:  intParam(c.QueryParam("limit"), service.DefaultPageSize),
		System: c.QueryParam("system"),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "listing timed out, retry"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, listGamesResponse{
		Games:      result.Groups,
		Pagination: result.Pagination,
	})
}

// intParam parses a query parameter, falling back to def when absent or
// non-numeric.
func intParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
