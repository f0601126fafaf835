package middleware_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jaekwang-park/doit-client/internal/api"
	"github.com/jaekwang-park/doit-client/internal/gate"
	"github.com/jaekwang-park/doit-client/internal/middleware"
	"github.com/jaekwang-park/doit-client/internal/nav"
)

// newGatedRouter returns a router guarded by a gate whose probe hits a
// fake backend accepting only the cookie ST=valid.
func newGatedRouter(t *testing.T) (*nav.Router, *atomic.Int32) {
	t.Helper()
	var probes atomic.Int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
		if c, err := r.Cookie("ST"); err == nil && c.Value == "valid" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
	}))
	t.Cleanup(backend.Close)

	client, err := api.New(backend.URL + "/api")
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	g, err := gate.New(gate.Config{Prober: client, Logger: slog.New(slog.DiscardHandler)})
	if err != nil {
		t.Fatalf("gate.New: %v", err)
	}

	router := nav.New(
		nav.Route{Name: "notes", Path: "/"},
		nav.Route{Name: "login", Path: "/login"},
		nav.Route{Name: "users", Path: "/users"},
	)
	router.BeforeEach(g.Guard())
	return router, &probes
}

func TestNavigationGate(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		cookie       string
		wantStatus   int
		wantLocation string
		wantProbe    bool
	}{
		{"protected page without session", http.MethodGet, "/users", "", http.StatusSeeOther, "/login", true},
		{"protected page with bad session", http.MethodGet, "/", "stale", http.StatusSeeOther, "/login", true},
		{"protected page with session", http.MethodGet, "/users", "valid", http.StatusOK, "", true},
		{"login page is public", http.MethodGet, "/login", "", http.StatusOK, "", false},
		{"query string ignored", http.MethodGet, "/users?tab=admins", "", http.StatusSeeOther, "/login", true},
		{"trailing slash is the same page", http.MethodGet, "/users/", "", http.StatusSeeOther, "/login", true},
		{"trailing slash with session", http.MethodGet, "/users/", "valid", http.StatusOK, "", true},
		{"unknown page without session", http.MethodGet, "/anything", "", http.StatusSeeOther, "/login", true},
		{"unknown page with session passes through", http.MethodGet, "/anything", "valid", http.StatusOK, "", true},
		{"asset not gated", http.MethodGet, "/assets/app.js", "", http.StatusOK, "", false},
		{"non-GET passes through", http.MethodPost, "/users", "", http.StatusOK, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, probes := newGatedRouter(t)
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			h := middleware.NavigationGate(router, slog.New(slog.DiscardHandler))(inner)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "ST", Value: tt.cookie})
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := w.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("expected Location %q, got %q", tt.wantLocation, got)
			}
			if got := probes.Load() > 0; got != tt.wantProbe {
				t.Errorf("expected probe=%v, got %d probes", tt.wantProbe, probes.Load())
			}
		})
	}
}

func TestNavigationGate_GuardErrorIsServerError(t *testing.T) {
	router := nav.New(nav.Route{Name: "notes", Path: "/"})
	router.BeforeEach(func(ctx context.Context, to, from nav.Location) (string, error) {
		return "", errors.New("boom")
	})

	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	h := middleware.NavigationGate(router, slog.New(slog.DiscardHandler))(inner)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
	if called {
		t.Error("inner handler should not run")
	}
}
