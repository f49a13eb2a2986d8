package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emuhub/emuhub/internal/core/domain"
	"github.com/emuhub/emuhub/internal/core/ports"
)

// defaultUserID is applied when a save request carries no user id, matching
// the behaviour clients already rely on.
const defaultUserID = "default"

// SaveHandler handles HTTP requests for save states and slots.
type SaveHandler struct {
	service ports.SaveService
}

func NewSaveHandler(svc ports.SaveService) *SaveHandler {
	return &SaveHandler{service: svc}
}

type saveStateRequest struct {
	UserID   string          `json:"userId"`
	System   string          `json:"system" validate:"required"`
	GameName string          `json:"gameName" validate:"required"`
	State    json.RawMessage `json:"state" validate:"required"`
	// Slot selects a numbered slot; zero means the quick save.
	Slot int `json:"slot,omitempty"`
}

type saveStateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type saveErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SaveState handles POST /api/save-state.
//
// @Summary      Write a save state (quick save or numbered slot)
// @Tags         saves
// @Accept       json
// @Produce      json
// @Param        body  body      saveStateRequest  true  "Save state payload"
// @Success      200   {object}  saveStateResponse
// @Failure      400   {object}  saveErrorResponse
// @Failure      500   {object}  saveErrorResponse
// @Router       /api/save-state [post]
func (h *SaveHandler) SaveState(c echo.Context) error {
	var req saveStateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, saveErrorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, saveErrorResponse{Error: err.Error()})
	}
	if req.UserID == "" {
		req.UserID = defaultUserID
	}

	ctx := c.Request().Context()
	var err error
	if req.Slot > 0 {
		err = h.service.SaveSlot(ctx, req.UserID, req.System, req.GameName, req.Slot, req.State)
	} else {
		err = h.service.Put(ctx, req.UserID, req.System, req.GameName, req.State)
	}
	if err != nil {
		return saveError(c, err, "failed to save state")
	}

	return c.JSON(http.StatusOK, saveStateResponse{Success: true, Message: "state saved"})
}

type loadStateResponse struct {
	Success bool            `json:"success"`
	State   json.RawMessage `json:"state"`
}

// LoadState handles GET /api/load-state.
//
// @Summary      Read a save state (quick save or numbered slot)
// @Tags         saves
// @Produce      json
// @Param        userId    query     string  false  "User id (default 'default')"
// @Param        system    query     string  true   "System id"
// @Param        gameName  query     string  true   "Game name (filename stem)"
// @Param        slot      query     int     false  "Numbered slot; omit for the quick save"
// @Success      200       {object}  loadStateResponse
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Failure      500       {object}  saveErrorResponse
// @Router       /api/load-state [get]
func (h *SaveHandler) LoadState(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		userID = defaultUserID
	}
	system := c.QueryParam("system")
	gameName := c.QueryParam("gameName")
	if system == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "system is required"})
	}
	if gameName == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "gameName is required"})
	}

	ctx := c.Request().Context()
	var state json.RawMessage
	var err error
	if slot := intParam(c.QueryParam("slot"), 0); slot > 0 {
		state, err = h.service.LoadSlot(ctx, userID, system, gameName, slot)
	} else {
		state, err = h.service.Get(ctx, userID, system, gameName)
	}
	if err != nil {
		if errors.Is(err, domain.ErrSaveNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Save not found"})
		}
		return saveError(c, err, "failed to load state")
	}

	return c.JSON(http.StatusOK, loadStateResponse{Success: true, State: state})
}

type listSlotsResponse struct {
	Success bool              `json:"success"`
	Slots   []domain.SlotInfo `json:"slots"`
}

// ListSlots handles GET /api/list-slots.
//
// @Summary      Probe the numbered save slots of one game
// @Tags         saves
// @Produce      json
// @Param        userId    query     string  false  "User id (default 'default')"
// @Param        system    query     string  true   "System id"
// @Param        gameName  query     string  true   "Game name (filename stem)"
// @Param        maxSlots  query     int     false  "Highest slot to probe (default 30)"
// @Success      200       {object}  listSlotsResponse
// @Failure      400       {object}  map[string]string
// @Failure      500       {object}  saveErrorResponse
// @Router       /api/list-slots [get]
func (h *SaveHandler) ListSlots(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		userID = defaultUserID
	}
	system := c.QueryParam("system")
	gameName := c.QueryParam("gameName")
	if system == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "system is required"})
	}
	if gameName == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "gameName is required"})
	}

	slots, err := h.service.ListSlots(c.Request().Context(), userID, system, gameName,
		intParam(c.QueryParam("maxSlots"), domain.DefaultMaxSlots))
	if err != nil {
		return saveError(c, err, "failed to list slots")
	}

	return c.JSON(http.StatusOK, listSlotsResponse{Success: true, Slots: slots})
}

// saveError maps service errors to the save endpoints' response shape.
func saveError(c echo.Context, err error, fallback string) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, saveErrorResponse{Error: ve.Error()})
	case errors.Is(err, domain.ErrSlotOutOfRange):
		return c.JSON(http.StatusBadRequest, saveErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, saveErrorResponse{Error: fallback})
	}
}
