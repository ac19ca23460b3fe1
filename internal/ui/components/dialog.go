package components

import "github.com/charmbracelet/lipgloss"

var dialogStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#2b3a42")).
	Padding(1, 2).
	Width(44)

// ConfirmDialog renders a yes/no confirmation for destructive actions.
func ConfirmDialog(title, message string) string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4f9d8f")).
		Bold(true).
		Render(title)

	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8e98a8")).
		Render(SanitizeText(message))

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8e98a8")).
		Render("\ny: confirm | n: cancel")

	return dialogStyle.Render(header + "\n\n" + body + hint)
}

// InputDialog renders a text input prompt with a block cursor.
func InputDialog(title, input string) string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4f9d8f")).
		Bold(true).
		Render(title)

	field := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5a7d9a")).
		Render("> " + SanitizeOneLine(input) + "█")

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8e98a8")).
		Render("\nenter: submit | esc: cancel")

	return dialogStyle.Render(header + "\n\n" + field + hint)
}
