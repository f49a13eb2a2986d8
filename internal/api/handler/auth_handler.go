package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emuhub/emuhub/internal/core/domain"
	"github.com/emuhub/emuhub/internal/core/ports"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	service ports.UserService
}

func NewAuthHandler(svc ports.UserService) *AuthHandler {
	return &AuthHandler{service: svc}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId,omitempty"`
	Message string `json:"message"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  authResponse
// @Failure      500   {object}  authResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authResponse{Message: "invalid payload"})
	}

	userID, err := h.service.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, authResponse{Message: ve.Error()})
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusBadRequest, authResponse{Message: "username already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, authResponse{Message: "registration failed"})
		}
	}

	return c.JSON(http.StatusOK, authResponse{Success: true, UserID: userID, Message: "registration successful"})
}

// Login authenticates a user and returns their opaque user id.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  authResponse
// @Failure      401   {object}  authResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authResponse{Message: "invalid payload"})
	}

	userID, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, authResponse{Message: ve.Error()})
		case errors.Is(err, domain.ErrInvalidCredentials):
			// One generic message for unknown user and wrong password alike.
			return c.JSON(http.StatusUnauthorized, authResponse{Message: "invalid username or password"})
		default:
			return c.JSON(http.StatusInternalServerError, authResponse{Message: "login failed"})
		}
	}

	return c.JSON(http.StatusOK, authResponse{Success: true, UserID: userID, Message: "login successful"})
}
