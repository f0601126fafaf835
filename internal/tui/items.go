package tui

import (
	"fmt"
	"strings"

	"github.com/jaekwang-park/doit-client/internal/model"
)

type noteItem struct {
	todo     model.Todo
	state    string
	priority string
	color    string
}

func newNoteItem(t model.Todo, opts model.Options) noteItem {
	it := noteItem{
		todo:     t,
		state:    fmt.Sprintf("state %d", t.StateID),
		priority: fmt.Sprintf("priority %d", t.PriorityID),
	}
	if s, ok := opts.StateByID(t.StateID); ok {
		it.state = s.State
	}
	if p, ok := opts.PriorityByID(t.PriorityID); ok {
		it.priority = fmt.Sprintf("priority %d", p.Priority)
	}
	if c, ok := opts.ColorByID(t.ColorID); ok {
		it.color = c.Hex
	}
	return it
}

func (i noteItem) Title() string { return swatch(i.color) + " " + i.todo.Title }

func (i noteItem) Description() string {
	parts := []string{i.state, i.priority}
	if i.todo.Expiration.DoesExpire {
		parts = append(parts, "expires "+i.todo.Expiration.Date)
	}
	if i.todo.Description != "" {
		parts = append(parts, i.todo.Description)
	}
	return strings.Join(parts, " · ")
}

func (i noteItem) FilterValue() string { return i.todo.Title }

type userItem struct {
	user model.User
}

func (i userItem) Title() string {
	t := i.user.Username
	if i.user.Admin {
		t += " " + accentStyle.Render("admin")
	}
	if !i.user.Active {
		t += " " + mutedStyle.Render("inactive")
	}
	return t
}

func (i userItem) Description() string {
	name := strings.TrimSpace(i.user.Name + " " + i.user.Surname)
	if name == "" {
		return i.user.Email
	}
	if i.user.Email == "" {
		return name
	}
	return name + " · " + i.user.Email
}

func (i userItem) FilterValue() string { return i.user.Username }
