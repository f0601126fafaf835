package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jaekwang-park/doit-client/internal/model"
	"github.com/jaekwang-park/doit-client/internal/modal"
	"github.com/jaekwang-park/doit-client/internal/nav"
)

type navigatedMsg struct {
	requested string
	loc       nav.Location
	err       error
}

type notesLoadedMsg struct {
	notes []model.Todo
	opts  model.Options
	user  *model.User
	err   error
}

type usersLoadedMsg struct {
	users []model.User
	err   error
}

type loggedInMsg struct {
	username string
	err      error
}

type loggedOutMsg struct {
	err error
}

type confirmedMsg struct {
	name string
	id   int64
	ok   bool
}

type deletedMsg struct {
	what string
	id   int64
	err  error
}

// Dialog names handed to the modal coordinator.
const (
	confirmDeleteNote = "confirm-delete-note"
	confirmDeleteUser = "confirm-delete-user"
)

func navigate(ctx context.Context, router *nav.Router, path string) tea.Cmd {
	return func() tea.Msg {
		loc, err := router.Navigate(ctx, path)
		return navigatedMsg{requested: path, loc: loc, err: err}
	}
}

func loadNotes(ctx context.Context, b Backend, withUser bool) tea.Cmd {
	return func() tea.Msg {
		notes, err := b.FetchNotes(ctx)
		if err != nil {
			return notesLoadedMsg{err: err}
		}
		opts, err := b.Options(ctx)
		if err != nil {
			return notesLoadedMsg{err: err}
		}
		msg := notesLoadedMsg{notes: notes, opts: opts}
		if withUser {
			user, err := b.CurrentUser(ctx)
			if err != nil {
				return notesLoadedMsg{err: err}
			}
			msg.user = &user
		}
		return msg
	}
}

func loadUsers(ctx context.Context, b Backend) tea.Cmd {
	return func() tea.Msg {
		users, err := b.Users(ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

func login(ctx context.Context, b Backend, username, password string) tea.Cmd {
	return func() tea.Msg {
		_, err := b.Login(ctx, username, password)
		return loggedInMsg{username: username, err: err}
	}
}

func logout(ctx context.Context, b Backend) tea.Cmd {
	return func() tea.Msg {
		_, err := b.Logout(ctx)
		return loggedOutMsg{err: err}
	}
}

// awaitConfirm turns the dialog's outcome into a message once the user
// answers. An outcome still pending when ctx ends reports a refusal.
func awaitConfirm(ctx context.Context, o *modal.Outcome, id int64) tea.Cmd {
	return func() tea.Msg {
		_, err := o.Wait(ctx)
		return confirmedMsg{name: o.Name(), id: id, ok: err == nil}
	}
}

func deleteNote(ctx context.Context, b Backend, id int64) tea.Cmd {
	return func() tea.Msg {
		_, err := b.DeleteTodo(ctx, id)
		return deletedMsg{what: "note", id: id, err: err}
	}
}

func deleteUser(ctx context.Context, b Backend, id int64) tea.Cmd {
	return func() tea.Msg {
		_, err := b.DeleteUser(ctx, id)
		return deletedMsg{what: "user", id: id, err: err}
	}
}
