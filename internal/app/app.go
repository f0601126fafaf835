// Package app wires the pieces shared by the CLI, the TUI and the web
// gateway: the page routes and the session gate in front of them.
package app

import (
	"fmt"
	"log/slog"

	"github.com/jaekwang-park/doit-client/internal/gate"
	"github.com/jaekwang-park/doit-client/internal/nav"
)

// Page paths. Every front end knows the same three destinations.
const (
	NotesPath = "/"
	LoginPath = gate.DefaultLoginPath
	UsersPath = "/users"
)

func Routes() []nav.Route {
	return []nav.Route{
		{Name: "notes", Path: NotesPath},
		{Name: "login", Path: LoginPath},
		{Name: "users", Path: UsersPath},
	}
}

// NewNavigation returns a router over Routes guarded by a session gate that
// probes through p.
func NewNavigation(p gate.Prober, policy gate.Policy, logger *slog.Logger) (*nav.Router, *gate.Gate, error) {
	g, err := gate.New(gate.Config{
		Prober:    p,
		LoginPath: LoginPath,
		Policy:    policy,
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session gate: %w", err)
	}

	router := nav.New(Routes()...)
	router.BeforeEach(g.Guard())
	return router, g, nil
}
