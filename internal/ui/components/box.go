package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var (
	boxBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2b3a42")).
			Padding(1, 2)

	boxHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4f9d8f")).
			Bold(true)

	boxMutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8e98a8"))

	boxValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d6dade"))

	boxLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5a7d9a")).
			Bold(true)

	errorBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8a3440")).
			Padding(1, 2)

	errorHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e06c75")).
				Bold(true)

	errorBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d6b5b5"))
)

func boxWidth(width int) int {
	// Use ~70% of terminal width, capped at 84.
	if width <= 0 {
		return 0
	}
	w := width * 70 / 100
	if w < 40 {
		w = 40
	}
	if w > 84 {
		w = 84
	}
	return w
}

func safeBoxWidth(width int) int {
	if width <= 0 {
		return boxWidth(width)
	}
	w := boxWidth(width)
	if w > width {
		return width
	}
	return w
}

// Box renders content inside a bordered box.
func Box(content string, width int) string {
	return boxBorder.Width(safeBoxWidth(width)).Render(content)
}

// BoxContentWidth returns the inner content width excluding border and padding.
func BoxContentWidth(width int) int {
	w := safeBoxWidth(width)
	if w <= 0 {
		return 0
	}
	// Border adds 2, padding adds 4 (left+right).
	inner := w - 6
	if inner < 0 {
		return 0
	}
	return inner
}

// ClampTextWidth truncates text to the given visual width (ANSI-aware).
func ClampTextWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	cleaned := SanitizeOneLine(text)
	if lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	return truncateRunes(cleaned, width)
}

// ErrorBox renders a red bordered box for errors.
func ErrorBox(title, message string, width int) string {
	header := ""
	if title != "" {
		header = errorHeaderStyle.Render(title) + "\n\n"
	}
	body := errorBodyStyle.Render(message)
	return errorBorder.Width(safeBoxWidth(width)).Render(header + body)
}

// TitledBox renders a box with the title embedded in the top border.
func TitledBox(title, content string, width int) string {
	if title == "" {
		return Box(content, width)
	}
	boxed := boxBorder.Width(safeBoxWidth(width)).Render(content)
	lines := strings.Split(boxed, "\n")
	if len(lines) == 0 {
		return boxed
	}

	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 4 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	middleLen := lineWidth - 2
	titleText := fmt.Sprintf(" [ %s ] ", title)
	if lipgloss.Width(titleText) > middleLen {
		titleText = truncateRunes(titleText, middleLen)
	}

	titleWidth := lipgloss.Width(titleText)
	left := (middleLen - titleWidth) / 2
	if left < 0 {
		left = 0
	}
	right := middleLen - titleWidth - left
	if right < 0 {
		right = 0
	}

	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#2b3a42"))
	leftSeg := borderStyle.Render(border.TopLeft + strings.Repeat(border.Top, left))
	rightSeg := borderStyle.Render(strings.Repeat(border.Top, right) + border.TopRight)
	line := leftSeg + boxHeaderStyle.Render(titleText) + rightSeg
	if w := lipgloss.Width(line); w < lineWidth {
		line += borderStyle.Render(strings.Repeat(border.Top, lineWidth-w))
	} else if w > lineWidth {
		line = truncateRunes(line, lineWidth)
	}

	lines[0] = line
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	var b strings.Builder
	b.Grow(max)
	n := 0
	for _, r := range s {
		if n >= max {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// TableRow is a single row in a key-value table.
type TableRow struct {
	Label      string
	Value      string
	ValueColor string
}

// Table renders a key-value table with aligned columns inside a bordered box.
func Table(title string, rows []TableRow, width int) string {
	if len(rows) == 0 {
		return ""
	}

	maxLabel := 0
	safeRows := make([]TableRow, len(rows))
	for i, r := range rows {
		safeRows[i] = TableRow{
			Label: SanitizeOneLine(r.Label),
			Value: SanitizeOneLine(r.Value),
		}
		if lipgloss.Width(safeRows[i].Label) > maxLabel {
			maxLabel = lipgloss.Width(safeRows[i].Label)
		}
	}

	contentWidth := BoxContentWidth(width)
	if contentWidth <= 0 {
		contentWidth = maxLabel + 8
	}

	labelWidth := maxLabel
	if labelWidth > 24 {
		labelWidth = 24
	}
	if maxLabelWidth := contentWidth / 2; labelWidth > maxLabelWidth && maxLabelWidth >= 8 {
		labelWidth = maxLabelWidth
	}
	if labelWidth < 4 {
		labelWidth = maxLabel
	}
	valueWidth := contentWidth - labelWidth - 2
	if valueWidth < 4 {
		valueWidth = 4
		labelWidth = maxInt(4, contentWidth-valueWidth-2)
	}

	var b strings.Builder
	for i, r := range safeRows {
		labelText := ClampTextWidth(r.Label, labelWidth)
		valueText := ClampTextWidth(r.Value, valueWidth)
		label := boxLabelStyle.Render(padRight(labelText, labelWidth))
		valueStyle := boxValueStyle
		if rows[i].ValueColor != "" {
			valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(rows[i].ValueColor))
		}
		b.WriteString(label + "  " + valueStyle.Render(valueText))
		if i < len(safeRows)-1 {
			b.WriteString("\n")
		}
	}

	if title != "" {
		return TitledBox(title, b.String(), width)
	}
	return Box(b.String(), width)
}

// Indent adds left padding to every line of a multi-line string.
func Indent(s string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// CenterLine centers a single line within the standard box width.
func CenterLine(s string, width int) string {
	w := safeBoxWidth(width)
	if w <= 0 {
		return s
	}
	lineWidth := lipgloss.Width(s)
	if lineWidth >= w {
		return s
	}
	pad := (w - lineWidth) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
