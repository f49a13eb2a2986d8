package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/emuhub/emuhub/internal/core/domain"
)

type savedCall struct {
	userID, system, game string
	slot                 int
	state                json.RawMessage
}

type stubSaveService struct {
	puts     []savedCall
	getState json.RawMessage
	getErr   error
	slots    []domain.SlotInfo
	slotsErr error
}

func (s *stubSaveService) Put(_ context.Context, userID, system, game string, state json.RawMessage) error {
	s.puts = append(s.puts, savedCall{userID: userID, system: system, game: game, state: state})
	return nil
}

func (s *stubSaveService) Get(_ context.Context, userID, system, game string) (json.RawMessage, error) {
	return s.getState, s.getErr
}

func (s *stubSaveService) SaveSlot(_ context.Context, userID, system, game string, slot int, state json.RawMessage) error {
	s.puts = append(s.puts, savedCall{userID: userID, system: system, game: game, slot: slot, state: state})
	return nil
}

func (s *stubSaveService) LoadSlot(_ context.Context, userID, system, game string, slot int) (json.RawMessage, error) {
	return s.getState, s.getErr
}

func (s *stubSaveService) ListSlots(_ context.Context, userID, system, game string, maxSlots int) ([]domain.SlotInfo, error) {
	return s.slots, s.slotsErr
}

func newSaveEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func getRequest(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSaveHandler_SaveState(t *testing.T) {
	e := newSaveEcho()
	svc := &stubSaveService{}
	h := NewSaveHandler(svc)
	c, rec := postJSON(e, "/api/save-state", `{"userId":"alice","system":"nes","gameName":"Mario","state":{"hp":3}}`)

	if err := h.SaveState(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp saveStateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if !resp.Success || resp.Message != "state saved" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if len(svc.puts) != 1 {
		t.Fatalf("expected one write, got %d", len(svc.puts))
	}
	call := svc.puts[0]
	if call.userID != "alice" || call.system != "nes" || call.game != "Mario" || call.slot != 0 {
		t.Fatalf("unexpected service call: %+v", call)
	}
	if string(call.state) != `{"hp":3}` {
		t.Fatalf("state payload mangled: %s", call.state)
	}
}

func TestSaveHandler_SaveStateDefaultsUser(t *testing.T) {
	e := newSaveEcho()
	svc := &stubSaveService{}
	h := NewSaveHandler(svc)
	c, _ := postJSON(e, "/api/save-state", `{"system":"nes","gameName":"Mario","state":{}}`)

	if err := h.SaveState(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if len(svc.puts) != 1 || svc.puts[0].userID != "default" {
		t.Fatalf("missing userId must fall back to default: %+v", svc.puts)
	}
}

func TestSaveHandler_SaveStateSlot(t *testing.T) {
	e := newSaveEcho()
	svc := &stubSaveService{}
	h := NewSaveHandler(svc)
	c, _ := postJSON(e, "/api/save-state", `{"system":"nes","gameName":"Mario","state":{},"slot":4}`)

	if err := h.SaveState(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if len(svc.puts) != 1 || svc.puts[0].slot != 4 {
		t.Fatalf("slot not routed to the slot store: %+v", svc.puts)
	}
}

func TestSaveHandler_SaveStateMissingFields(t *testing.T) {
	e := newSaveEcho()
	h := NewSaveHandler(&stubSaveService{})

	cases := []struct {
		name, body, want string
	}{
		{"no system", `{"gameName":"Mario","state":{}}`, "system is required"},
		{"no gameName", `{"system":"nes","state":{}}`, "gameName is required"},
		{"no state", `{"system":"nes","gameName":"Mario"}`, "state is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := postJSON(e, "/api/save-state", tc.body)
			if err := h.SaveState(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			var resp saveErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if resp.Error != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, resp.Error)
			}
		})
	}
}

func TestSaveHandler_LoadState(t *testing.T) {
	e := newSaveEcho()
	h := NewSaveHandler(&stubSaveService{getState: json.RawMessage(`{"hp":3}`)})
	c, rec := getRequest(e, "/api/load-state?system=nes&gameName=Mario")

	if err := h.LoadState(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp loadStateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if !resp.Success || string(resp.State) != `{"hp":3}` {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSaveHandler_LoadStateNotFound(t *testing.T) {
	e := newSaveEcho()
	h := NewSaveHandler(&stubSaveService{getErr: domain.ErrSaveNotFound})
	c, rec := getRequest(e, "/api/load-state?system=nes&gameName=Nothing")

	if err := h.LoadState(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp["error"] != "Save not found" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestSaveHandler_LoadStateMissingParams(t *testing.T) {
	e := newSaveEcho()
	h := NewSaveHandler(&stubSaveService{})

	cases := []struct{ target, want string }{
		{"/api/load-state?gameName=Mario", "system is required"},
		{"/api/load-state?system=nes", "gameName is required"},
	}
	for _, tc := range cases {
		c, rec := getRequest(e, tc.target)
		if err := h.LoadState(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.target, rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response is not valid JSON: %v", err)
		}
		if resp["error"] != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.target, tc.want, resp["error"])
		}
	}
}

func TestSaveHandler_ListSlots(t *testing.T) {
	e := newSaveEcho()
	h := NewSaveHandler(&stubSaveService{slots: []domain.SlotInfo{
		{Number: 1},
		{Number: 2, HasSave: true, Info: json.RawMessage(`{"hp":1}`)},
	}})
	c, rec := getRequest(e, "/api/list-slots?system=nes&gameName=Mario&maxSlots=2")

	if err := h.ListSlots(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp listSlotsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if !resp.Success || len(resp.Slots) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Slots[0].HasSave || !resp.Slots[1].HasSave {
		t.Fatalf("slot occupancy misreported: %+v", resp.Slots)
	}
}
