package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeOneLineStripsOscAndNewlines(t *testing.T) {
	input := "\x1b]8;;https://evil\x07click\x1b]8;;\x07\nline\tmore"
	out := SanitizeOneLine(input)

	assert.False(t, strings.Contains(out, "\x1b"))
	assert.False(t, strings.Contains(out, "\n"))
	assert.False(t, strings.Contains(out, "\t"))
}

func TestSanitizeOneLineCollapsesWhitespace(t *testing.T) {
	out := SanitizeOneLine("  apt29   \n\t backdoor  ")
	assert.Equal(t, "apt29 backdoor", out)
}

func TestSanitizeTextStripsCsiSequences(t *testing.T) {
	input := "\x1b[31mransomware\x1b[0m"
	out := SanitizeText(input)

	assert.Equal(t, "ransomware", out)
}

func TestSanitizeTextRemovesBidiControls(t *testing.T) {
	input := "safe‮exe.txt"
	out := SanitizeText(input)

	assert.NotContains(t, out, "‮")
}

func TestSanitizeTextKeepsNewlinesAndTabs(t *testing.T) {
	out := SanitizeText("line1\nline2\tend")
	assert.Equal(t, "line1\nline2\tend", out)
}
