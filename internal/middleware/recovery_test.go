package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jaekwang-park/doit-client/internal/middleware"
)

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return logger, &buf
}

func TestRecovery_NoPanic(t *testing.T) {
	logger, _ := newTestLogger()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	h := middleware.Recovery(logger)(inner)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}
}

func TestRecovery_WithPanic(t *testing.T) {
	logger, logBuf := newTestLogger()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	h := middleware.Recovery(logger)(inner)
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req = req.WithContext(middleware.SetRequestID(req.Context(), "req-7"))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var result map[string]map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got := result["error"]["code"]; got != "INTERNAL_ERROR" {
		t.Errorf("expected code=INTERNAL_ERROR, got %v", got)
	}
	if !bytes.Contains(logBuf.Bytes(), []byte("request_id=req-7")) {
		t.Errorf("expected request ID in log, got: %s", logBuf.String())
	}
}

func TestRecovery_PanicAfterHeaderWritten(t *testing.T) {
	logger, logBuf := newTestLogger()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>"))
		panic("panic after write")
	})

	h := middleware.Recovery(logger)(inner)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 (already written), got %d", w.Code)
	}
	if w.Body.String() != "<html>" {
		t.Errorf("expected body untouched, got %q", w.Body.String())
	}
	if !bytes.Contains(logBuf.Bytes(), []byte("panic recovered")) {
		t.Error("expected panic to be logged")
	}
}

func TestRecovery_AbortHandlerIsRepanicked(t *testing.T) {
	logger, logBuf := newTestLogger()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	h := middleware.Recovery(logger)(inner)

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("expected ErrAbortHandler to propagate, got %v", rec)
		}
		if logBuf.Len() != 0 {
			t.Errorf("expected nothing logged, got: %s", logBuf.String())
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
