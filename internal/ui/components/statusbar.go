package components

import "github.com/charmbracelet/lipgloss"

var (
	hintDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8e98a8"))
	keyCapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10161a")).
			Background(lipgloss.Color("#7d97a8")).
			Bold(true).
			Padding(0, 1)
	segmentStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#2b3a42")).
			Padding(0, 1).
			MarginRight(1)
	statusBarPad = lipgloss.NewStyle().
			PaddingLeft(2)
)

// StatusBar renders the bottom hint bar, wrapping segments to fit the width.
func StatusBar(hints []string, width int) string {
	segments := make([]string, 0, len(hints))
	for _, h := range hints {
		segments = append(segments, segmentStyle.Render(h))
	}
	if width <= 0 {
		content := lipgloss.JoinHorizontal(lipgloss.Top, segments...)
		return statusBarPad.Render(content)
	}

	rows := wrapSegments(segments, width)
	if len(rows) == 0 {
		return ""
	}
	maxRowWidth := 0
	for _, row := range rows {
		if w := lipgloss.Width(row); w > maxRowWidth {
			maxRowWidth = w
		}
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lipgloss.NewStyle().Width(maxRowWidth).Align(lipgloss.Center).Render(row))
	}
	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return statusBarPad.Width(width).Align(lipgloss.Center).Render(block)
}

// Hint formats a single keybind hint like "↑/↓ Scroll".
func Hint(key, desc string) string {
	keyText := keyCapStyle.Render(key)
	return hintDescStyle.Render(desc+" ") + keyText
}

func wrapSegments(segments []string, width int) []string {
	if width <= 0 {
		return []string{lipgloss.JoinHorizontal(lipgloss.Top, segments...)}
	}
	rows := make([]string, 0, 2)
	var current []string
	currentWidth := 0
	for _, seg := range segments {
		segWidth := lipgloss.Width(seg)
		if currentWidth > 0 && currentWidth+segWidth > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = []string{seg}
			currentWidth = segWidth
			continue
		}
		current = append(current, seg)
		currentWidth += segWidth
	}
	if len(current) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
	}
	return rows
}
