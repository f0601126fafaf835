package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jaekwang-park/doit-client/internal/api"
	"github.com/jaekwang-park/doit-client/internal/app"
	"github.com/jaekwang-park/doit-client/internal/model"
)

type confirmation struct {
	name  string
	id    int64
	title string
	body  string
}

// Model is the Bubble Tea model for the whole TUI.
type Model struct {
	ctx    context.Context
	cfg    Config
	logger *slog.Logger

	screen string // current path, "" until the first navigation settles
	busy   string
	status string
	err    error
	user   *model.User

	username textinput.Model
	password textinput.Model

	notes list.Model
	users list.Model

	confirm *confirmation

	width, height int
}

func New(ctx context.Context, cfg Config) (Model, error) {
	if err := cfg.validate(); err != nil {
		return Model{}, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	username := textinput.New()
	username.Prompt = "Username: "
	username.CharLimit = 128

	password := textinput.New()
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 256

	return Model{
		ctx:      ctx,
		cfg:      cfg,
		logger:   logger,
		busy:     "Checking session…",
		username: username,
		password: password,
		notes:    newList("Notes"),
		users:    newList("Users"),
		width:    80,
		height:   24,
	}, nil
}

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.Styles.Title = titleStyle
	l.SetShowHelp(false)
	l.SetStatusBarItemName("item", "items")
	l.DisableQuitKeybindings()
	return l
}

// Screen returns the path of the screen on display.
func (m Model) Screen() string {
	return m.screen
}

func (m Model) Init() tea.Cmd {
	return m.goTo(app.NotesPath)
}

func (m Model) goTo(path string) tea.Cmd {
	return navigate(m.ctx, m.cfg.Navigation, path)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case navigatedMsg:
		return m.onNavigated(msg)
	case notesLoadedMsg:
		return m.onNotesLoaded(msg)
	case usersLoadedMsg:
		return m.onUsersLoaded(msg)
	case loggedInMsg:
		return m.onLoggedIn(msg)
	case loggedOutMsg:
		return m.onLoggedOut(msg)
	case confirmedMsg:
		return m.onConfirmed(msg)
	case deletedMsg:
		return m.onDeleted(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		switch m.screen {
		case app.LoginPath:
			return m.updateLogin(msg)
		case app.NotesPath:
			return m.updateNotes(msg)
		case app.UsersPath:
			return m.updateUsers(msg)
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.screen {
	case app.NotesPath:
		m.notes, cmd = m.notes.Update(msg)
	case app.UsersPath:
		m.users, cmd = m.users.Update(msg)
	case app.LoginPath:
		m.username, cmd = m.username.Update(msg)
	}
	return m, cmd
}

func (m Model) onNavigated(msg navigatedMsg) (tea.Model, tea.Cmd) {
	m.busy = ""
	if msg.err != nil {
		m.logger.Error("navigation failed", "path", msg.requested, "error", msg.err)
		m.err = msg.err
		return m, nil
	}

	m.screen = msg.loc.Path
	m.err = nil
	switch m.screen {
	case app.LoginPath:
		m.user = nil
		if msg.requested != app.LoginPath {
			m.status = "Please log in to continue"
		}
		m.password.SetValue("")
		m.password.Blur()
		return m, m.username.Focus()
	case app.NotesPath:
		m.busy = "Loading notes…"
		return m, loadNotes(m.ctx, m.cfg.Backend, m.user == nil)
	case app.UsersPath:
		m.busy = "Loading users…"
		return m, loadUsers(m.ctx, m.cfg.Backend)
	}
	return m, nil
}

// failed records err; a lost session sends the user back through the gate.
func (m Model) failed(err error) (Model, tea.Cmd) {
	m.busy = ""
	if errors.Is(err, api.ErrUnauthenticated) {
		m.status = "Session expired"
		return m, m.goTo(m.screen)
	}
	m.err = err
	return m, nil
}

func (m Model) onNotesLoaded(msg notesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.failed(msg.err)
	}
	m.busy = ""
	if msg.user != nil {
		m.user = msg.user
	}
	items := make([]list.Item, 0, len(msg.notes))
	for _, t := range msg.notes {
		items = append(items, newNoteItem(t, msg.opts))
	}
	return m, m.notes.SetItems(items)
}

func (m Model) onUsersLoaded(msg usersLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.failed(msg.err)
	}
	m.busy = ""
	items := make([]list.Item, 0, len(msg.users))
	for _, u := range msg.users {
		items = append(items, userItem{user: u})
	}
	return m, m.users.SetItems(items)
}

func (m Model) onLoggedIn(msg loggedInMsg) (tea.Model, tea.Cmd) {
	m.busy = ""
	if msg.err != nil {
		m.err = msg.err
		m.password.SetValue("")
		return m, nil
	}
	if m.cfg.OnLogin != nil {
		if err := m.cfg.OnLogin(); err != nil {
			m.logger.Error("failed to save session", "error", err)
			m.err = err
		}
	}
	m.status = "Logged in as " + msg.username
	m.username.Blur()
	m.password.Blur()
	m.busy = "Checking session…"
	return m, m.goTo(app.NotesPath)
}

func (m Model) onLoggedOut(msg loggedOutMsg) (tea.Model, tea.Cmd) {
	m.busy = ""
	if msg.err != nil && !errors.Is(msg.err, api.ErrUnauthenticated) {
		m.err = msg.err
		return m, nil
	}
	if m.cfg.OnLogout != nil {
		if err := m.cfg.OnLogout(); err != nil {
			m.logger.Error("failed to clear session", "error", err)
		}
	}
	m.user = nil
	m.status = "Logged out"
	return m, m.goTo(app.NotesPath)
}

// ask shows a confirmation dialog through the modal coordinator. The
// returned command settles when the dialog is answered.
func (m Model) ask(c confirmation) (tea.Model, tea.Cmd) {
	outcome := m.cfg.Modals.Show(c.name)
	m.confirm = &c
	return m, awaitConfirm(m.ctx, outcome, c.id)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.cfg.Modals.Accept()
	case "n", "N", "esc", "q":
		m.cfg.Modals.Reject()
	}
	return m, nil
}

func (m Model) onConfirmed(msg confirmedMsg) (tea.Model, tea.Cmd) {
	m.confirm = nil
	if !msg.ok {
		m.status = "Cancelled"
		return m, nil
	}
	switch msg.name {
	case confirmDeleteNote:
		m.busy = "Deleting note…"
		return m, deleteNote(m.ctx, m.cfg.Backend, msg.id)
	case confirmDeleteUser:
		m.busy = "Deleting user…"
		return m, deleteUser(m.ctx, m.cfg.Backend, msg.id)
	}
	return m, nil
}

func (m Model) onDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.failed(msg.err)
	}
	m.status = fmt.Sprintf("Deleted %s %d", msg.what, msg.id)
	if msg.what == "user" {
		m.busy = "Loading users…"
		return m, loadUsers(m.ctx, m.cfg.Backend)
	}
	m.busy = "Loading notes…"
	return m, loadNotes(m.ctx, m.cfg.Backend, false)
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		return m, m.toggleLoginFocus()
	case "enter":
		if m.username.Focused() {
			return m, m.toggleLoginFocus()
		}
		username := strings.TrimSpace(m.username.Value())
		if username == "" {
			m.err = errors.New("username is required")
			return m, nil
		}
		m.err = nil
		m.busy = "Logging in…"
		return m, login(m.ctx, m.cfg.Backend, username, m.password.Value())
	}

	var cmd tea.Cmd
	if m.password.Focused() {
		m.password, cmd = m.password.Update(msg)
	} else {
		m.username, cmd = m.username.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleLoginFocus() tea.Cmd {
	if m.username.Focused() {
		m.username.Blur()
		return m.password.Focus()
	}
	m.password.Blur()
	return m.username.Focus()
}

func (m Model) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.notes.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		m.busy = "Loading notes…"
		return m, loadNotes(m.ctx, m.cfg.Backend, false)
	case "u":
		m.busy = "Checking session…"
		return m, m.goTo(app.UsersPath)
	case "L":
		m.busy = "Logging out…"
		return m, logout(m.ctx, m.cfg.Backend)
	case "d", "delete":
		it, ok := m.notes.SelectedItem().(noteItem)
		if !ok {
			return m, nil
		}
		return m.ask(confirmation{
			name:  confirmDeleteNote,
			id:    it.todo.ID,
			title: "Delete note",
			body:  fmt.Sprintf("Delete %q?", it.todo.Title),
		})
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m Model) updateUsers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.users.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.users, cmd = m.users.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "n":
		m.busy = "Checking session…"
		return m, m.goTo(app.NotesPath)
	case "r":
		m.busy = "Loading users…"
		return m, loadUsers(m.ctx, m.cfg.Backend)
	case "L":
		m.busy = "Logging out…"
		return m, logout(m.ctx, m.cfg.Backend)
	case "d", "delete":
		it, ok := m.users.SelectedItem().(userItem)
		if !ok {
			return m, nil
		}
		return m.ask(confirmation{
			name:  confirmDeleteUser,
			id:    it.user.ID,
			title: "Delete user",
			body:  fmt.Sprintf("Delete user %q? This cannot be undone.", it.user.Username),
		})
	}

	var cmd tea.Cmd
	m.users, cmd = m.users.Update(msg)
	return m, cmd
}

func (m *Model) resize() {
	w, h := m.width-4, m.height-6
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	m.notes.SetSize(w, h)
	m.users.SetSize(w, h)
}

func (m Model) View() string {
	var body string
	switch m.screen {
	case app.LoginPath:
		body = m.viewLogin()
	case app.NotesPath:
		body = m.notes.View()
	case app.UsersPath:
		body = m.users.View()
	default:
		body = mutedStyle.Render("doit")
	}

	if m.confirm != nil {
		box := dialog(m.width, m.confirm.title, m.confirm.body)
		body = lipgloss.Place(m.width-4, lipgloss.Height(body), lipgloss.Center, lipgloss.Center, box)
	}

	return panel(lipgloss.JoinVertical(lipgloss.Left, m.header(), body, m.footer()))
}

func (m Model) header() string {
	h := titleStyle.Render("doit")
	if m.user != nil {
		h += "  " + accentStyle.Render(m.user.Username)
	}
	return h
}

func (m Model) viewLogin() string {
	return strings.Join([]string{
		titleStyle.Render("Log in"),
		"",
		m.username.View(),
		m.password.View(),
	}, "\n")
}

func (m Model) footer() string {
	var line string
	switch {
	case m.busy != "":
		line = mutedStyle.Render(m.busy)
	case m.err != nil:
		line = errorStyle.Render(m.err.Error())
	case m.status != "":
		line = okStyle.Render(m.status)
	}

	var keys string
	switch m.screen {
	case app.LoginPath:
		keys = "tab: switch field   enter: log in   esc: quit"
	case app.NotesPath:
		keys = "d: delete   r: reload   u: users   L: log out   /: filter   q: quit"
	case app.UsersPath:
		keys = "d: delete   r: reload   n/esc: notes   L: log out   /: filter   q: quit"
	}
	return line + "\n" + helpStyle.Render(keys)
}
