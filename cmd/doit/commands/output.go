package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jaekwang-park/doit-client/internal/model"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// render writes data as indented JSON or rows as a table, following --output.
func (e *env) render(w io.Writer, data any, headers []string, rows [][]string) error {
	if e.output == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	_, err := fmt.Fprintln(w, renderTable(headers, rows))
	return err
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}

var noteHeaders = []string{"ID", "TITLE", "STATE", "PRIORITY", "COLOR", "EXPIRES"}

// noteRows names each reference ID through opts, falling back to the raw
// ID when opts does not know it.
func noteRows(notes []model.Todo, opts model.Options) [][]string {
	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		state := id(n.StateID)
		if s, ok := opts.StateByID(n.StateID); ok {
			state = s.State
		}
		priority := id(n.PriorityID)
		if p, ok := opts.PriorityByID(n.PriorityID); ok {
			priority = strconv.Itoa(int(p.Priority))
		}
		color := id(n.ColorID)
		if c, ok := opts.ColorByID(n.ColorID); ok {
			color = c.Hex
		}
		rows = append(rows, []string{id(n.ID), n.Title, state, priority, color, expires(n.Expiration)})
	}
	return rows
}

var userHeaders = []string{"ID", "USERNAME", "EMAIL", "NAME", "ADMIN", "EXTERNAL", "ACTIVE"}

func userRows(users []model.User) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			id(u.ID), u.Username, u.Email, fullName(u),
			yesNo(u.Admin), yesNo(u.External), yesNo(u.Active),
		})
	}
	return rows
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func expires(e model.Expiration) string {
	if !e.DoesExpire {
		return "-"
	}
	return e.Date
}

func fullName(u model.User) string {
	switch {
	case u.Name == "":
		return u.Surname
	case u.Surname == "":
		return u.Name
	default:
		return u.Name + " " + u.Surname
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
