package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

func panel(inner string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Render(inner)
}

func dialog(width int, title, body string) string {
	w := width - 12
	if w < 30 {
		w = 30
	}
	if w > 64 {
		w = 64
	}
	content := titleStyle.Render(title) + "\n\n" + body + "\n\n" + helpStyle.Render("y/enter: confirm   n/esc: cancel")
	return lipgloss.NewStyle().
		Width(w).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Render(content)
}

// swatch renders a colored dot for a #rrggbb color, or nothing for an
// unknown one.
func swatch(hex string) string {
	if !strings.HasPrefix(hex, "#") {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}
