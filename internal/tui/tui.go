// Package tui is the terminal front end: a login screen, the notes list and
// the user list. Every screen change goes through the navigation router, so
// the session gate decides where the user actually lands.
package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jaekwang-park/doit-client/internal/model"
	"github.com/jaekwang-park/doit-client/internal/modal"
	"github.com/jaekwang-park/doit-client/internal/nav"
)

// Backend is the part of *api.Client the screens use.
type Backend interface {
	IsLoggedIn(ctx context.Context) (bool, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context) (string, error)
	CurrentUser(ctx context.Context) (model.User, error)
	FetchNotes(ctx context.Context) ([]model.Todo, error)
	Options(ctx context.Context) (model.Options, error)
	DeleteTodo(ctx context.Context, id int64) (string, error)
	Users(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id int64) (string, error)
}

type Config struct {
	Backend    Backend
	Navigation *nav.Router
	Modals     *modal.Coordinator
	Logger     *slog.Logger
	// OnLogin and OnLogout let the caller persist or drop the session.
	OnLogin  func() error
	OnLogout func() error
}

func (c Config) validate() error {
	switch {
	case c.Backend == nil:
		return errors.New("tui: Backend is required")
	case c.Navigation == nil:
		return errors.New("tui: Navigation is required")
	case c.Modals == nil:
		return errors.New("tui: Modals is required")
	}
	return nil
}

// Run shows the TUI until the user quits or ctx is done.
func Run(ctx context.Context, cfg Config) error {
	m, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
