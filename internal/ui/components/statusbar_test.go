package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestHintIncludesKeyAndDesc(t *testing.T) {
	out := Hint("↑/↓", "Scroll")
	assert.True(t, strings.Contains(out, "Scroll"))
	assert.True(t, strings.Contains(out, "↑/↓"))
}

func TestStatusBarRendersHints(t *testing.T) {
	out := StatusBar([]string{Hint("q", "Quit")}, 0)
	assert.True(t, strings.Contains(out, "Quit"))
	assert.True(t, strings.Contains(out, "q"))
}

func TestWrapSegmentsWrapsWhenNarrow(t *testing.T) {
	segments := []string{"123456", "abcdef", "ghijkl"}
	rows := wrapSegments(segments, 10)
	assert.Len(t, rows, 3)
	for _, row := range rows {
		assert.LessOrEqual(t, lipgloss.Width(row), 10)
	}
}

func TestTogglePillStates(t *testing.T) {
	on := SanitizeText(TogglePill(true))
	off := SanitizeText(TogglePill(false))
	assert.Contains(t, on, "on")
	assert.Contains(t, off, "off")
}

func TestConfirmDialogIncludesTitleAndMessage(t *testing.T) {
	out := ConfirmDialog("Delete keyword", "Remove 'apt29' from the watchlist?")
	assert.Contains(t, out, "Delete keyword")
	assert.Contains(t, out, "apt29")
}

func TestInputDialogShowsTypedText(t *testing.T) {
	out := InputDialog("Add keyword", "lockbit")
	assert.Contains(t, out, "lockbit")
}
