package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBanner renders title and an optional subtitle centered in a double
// border, as shown when the REPL starts.
func RenderBanner(title, subtitle string) string {
	t := GetCurrentBoxTheme()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Title)
	body := titleStyle.Render(title)
	if subtitle != "" {
		body = lipgloss.JoinVertical(lipgloss.Center, body, lipgloss.NewStyle().Foreground(t.Dim).Render(subtitle))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Border).
		Padding(0, 4).
		Align(lipgloss.Center).
		Render(body)
}

// RenderPanel renders lines under a bold heading inside a rounded border.
func RenderPanel(heading string, lines ...string) string {
	t := GetCurrentBoxTheme()
	content := lipgloss.NewStyle().Foreground(t.Text).Render(strings.Join(lines, "\n"))
	if heading != "" {
		content = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Foreground(t.Title).Render(heading),
			content)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Render(content)
}
