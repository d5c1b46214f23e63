package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/infinite/internal/ui"
)

var (
	panelStyle        lipgloss.Style
	titleStyle        lipgloss.Style
	dimStyle          lipgloss.Style
	labelStyle        lipgloss.Style
	valueStyle        lipgloss.Style
	statusOKStyle     lipgloss.Style
	statusErrorStyle  lipgloss.Style
	statusActiveStyle lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds the styles from the current ui theme. Run calls it
// again once the application has chosen a theme.
func initStyles() {
	t := ui.GetCurrentBoxTheme()
	noColor := ui.GetCurrentTheme().Name == ui.NoColorTheme.Name

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Title)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	labelStyle = lipgloss.NewStyle().Foreground(t.Dim)
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Text)

	statusOKStyle = lipgloss.NewStyle().Bold(true)
	statusErrorStyle = lipgloss.NewStyle().Bold(true)
	statusActiveStyle = lipgloss.NewStyle()
	if !noColor {
		statusOKStyle = statusOKStyle.Foreground(lipgloss.Color("#5FFF5F"))
		statusErrorStyle = statusErrorStyle.Foreground(lipgloss.Color("#FF5F5F"))
		statusActiveStyle = statusActiveStyle.Foreground(t.Border)
	}
}
