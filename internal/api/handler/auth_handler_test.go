package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/emuhub/emuhub/internal/core/domain"
)

type stubUserService struct {
	registerID  string
	registerErr error
	loginID     string
	loginErr    error
}

func (s *stubUserService) Register(_ context.Context, username, password string) (string, error) {
	return s.registerID, s.registerErr
}

func (s *stubUserService) Login(_ context.Context, username, password string) (string, error) {
	return s.loginID, s.loginErr
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeAuth(t *testing.T, rec *httptest.ResponseRecorder) authResponse {
	t.Helper()
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return resp
}

func TestAuthHandler_Register(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubUserService{registerID: "user_abc"})
	c, rec := postJSON(e, "/api/register", `{"username":"alice","password":"secret123"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeAuth(t, rec)
	if !resp.Success || resp.UserID != "user_abc" || resp.Message != "registration successful" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubUserService{
		registerErr: domain.NewValidationError("password", "must be at least 6 characters"),
	})
	c, rec := postJSON(e, "/api/register", `{"username":"alice","password":"123"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeAuth(t, rec)
	if resp.Success || !strings.Contains(resp.Message, "password") {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubUserService{registerErr: domain.ErrUserExists})
	c, rec := postJSON(e, "/api/register", `{"username":"alice","password":"secret123"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeAuth(t, rec); resp.Message != "username already exists" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubUserService{loginID: "user_abc"})
	c, rec := postJSON(e, "/api/login", `{"username":"alice","password":"secret123"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeAuth(t, rec)
	if !resp.Success || resp.UserID != "user_abc" || resp.Message != "login successful" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubUserService{loginErr: domain.ErrInvalidCredentials})
	c, rec := postJSON(e, "/api/login", `{"username":"alice","password":"wrong1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeAuth(t, rec)
	if resp.Success || resp.Message != "invalid username or password" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.UserID != "" {
		t.Fatalf("failed login leaked a user id: %+v", resp)
	}
}

func TestAuthHandler_MalformedBody(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubUserService{})
	c, rec := postJSON(e, "/api/register", `{broken`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
