// Package testutil has helpers for asserting on rendered panels.
package testutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences so rendered output can be compared
// as plain text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// FindLine returns the first plain-text line containing substr.
func FindLine(output, substr string) string {
	for line := range strings.SplitSeq(StripANSI(output), "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

// LineIndex returns the index of the first plain-text line containing
// substr, or -1.
func LineIndex(output, substr string) int {
	for i, line := range strings.Split(StripANSI(output), "\n") {
		if strings.Contains(line, substr) {
			return i
		}
	}
	return -1
}

// CountLines counts non-blank lines.
func CountLines(output string) int {
	n := 0
	for line := range strings.SplitSeq(StripANSI(output), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
