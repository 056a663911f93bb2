// Package render has width-aware text helpers for the terminal panels.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Sanitize drops control characters and invalid UTF-8 from metadata so a
// bad tag cannot break the terminal. Non-breaking spaces become spaces.
func Sanitize(s string) string {
	clean := true
	for _, r := range s {
		if r == utf8.RuneError || r == '\u00a0' || (r != '\t' && unicode.IsControl(r)) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size <= 1:
		case r != '\t' && unicode.IsControl(r):
		case r == '\u00a0':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Truncate cuts plain text to maxWidth cells, ending with "..." when cut.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// TruncateEllipsis cuts possibly styled text to maxWidth cells, ending
// with a single "…" when cut.
func TruncateEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// Pad right-fills plain text with spaces up to width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TruncateAndPad returns plain text exactly width cells wide.
func TruncateAndPad(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// Row places left and right at both ends of a width-cell line, keeping at
// least one space between them.
func Row(left, right string, width int) string {
	gap := max(width-ansi.StringWidth(left)-ansi.StringWidth(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator is a horizontal rule.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}

// EmptyLine is a blank line of width cells.
func EmptyLine(width int) string {
	return strings.Repeat(" ", max(width, 0))
}

// ClipLines keeps the first n lines of a block.
func ClipLines(block string, n int) string {
	if n <= 0 || block == "" {
		return ""
	}
	lines := strings.SplitN(block, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
