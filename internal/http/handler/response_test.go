package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jaekwang-park/doit-client/internal/http/handler"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	handler.WriteJSON(w, http.StatusCreated, map[string]string{"status": "ok"})

	if w.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", result["status"])
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	handler.WriteError(w, http.StatusBadGateway, handler.CodeBadGateway, "backend unavailable")

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", w.Code)
	}

	var result handler.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Error.Code != "BAD_GATEWAY" {
		t.Errorf("expected code=BAD_GATEWAY, got %s", result.Error.Code)
	}
	if result.Error.Message != "backend unavailable" {
		t.Errorf("expected message='backend unavailable', got %s", result.Error.Message)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()

	handler.MethodNotAllowed(w, http.MethodGet, http.MethodHead)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
	if got := w.Header().Values("Allow"); len(got) != 2 || got[0] != "GET" || got[1] != "HEAD" {
		t.Errorf("expected Allow GET, HEAD, got %v", got)
	}
}
