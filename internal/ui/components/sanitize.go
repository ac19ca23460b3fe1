package components

import (
	"regexp"
	"strings"
	"unicode"
)

// Matches CSI sequences and OSC sequences (BEL or ST terminated).
var ansiPattern = regexp.MustCompile(`\x1b(\[[0-9;]*[A-Za-z]|\][^\x07\x1b]*(\x07|\x1b\\)?)`)

var bidiControls = map[rune]struct{}{
	'‪': {},
	'‫': {},
	'‬': {},
	'‭': {},
	'‮': {},
	'⁦': {},
	'⁧': {},
	'⁨': {},
	'⁩': {},
	'‎': {},
	'‏': {},
}

// SanitizeText strips control characters and ANSI escape sequences from
// display strings. Keyword and feed names come straight from the server and
// may echo attacker-controlled article content.
func SanitizeText(input string) string {
	if input == "" {
		return input
	}
	cleaned := ansiPattern.ReplaceAllString(input, "")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if _, ok := bidiControls[r]; ok {
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, cleaned)
}

// SanitizeOneLine sanitizes and flattens a string to a single display line.
func SanitizeOneLine(input string) string {
	cleaned := SanitizeText(input)
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\t", " ")
	return strings.Join(strings.Fields(cleaned), " ")
}
