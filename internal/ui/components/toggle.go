package components

import "github.com/charmbracelet/lipgloss"

var (
	activePillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10161a")).
			Background(lipgloss.Color("#4f9d8f")).
			Padding(0, 1)
	inactivePillStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8e98a8")).
				Background(lipgloss.Color("#2b3a42")).
				Padding(0, 1)
)

// TogglePill renders an on/off state as a small colored pill.
func TogglePill(on bool) string {
	if on {
		return activePillStyle.Render("on")
	}
	return inactivePillStyle.Render("off")
}
