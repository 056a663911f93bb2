// Package overlay draws a block of text over another one.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Compose draws top over base starting at column x and row y. Spaces at
// either end of a top line leave the base visible. Both blocks may carry
// ANSI styling.
func Compose(base, top string, x, y, width int) string {
	baseLines := strings.Split(base, "\n")

	for i, line := range strings.Split(top, "\n") {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}

		plain := ansi.Strip(line)
		if strings.TrimSpace(plain) == "" {
			continue
		}
		lead := len(plain) - len(strings.TrimLeft(plain, " "))
		end := lead + ansi.StringWidth(strings.TrimSpace(plain))
		content := ansi.Cut(line, lead, end)

		start := x + lead
		stop := x + end
		under := baseLines[row]
		if w := ansi.StringWidth(under); w < width {
			under += strings.Repeat(" ", width-w)
		}

		out := ansi.Cut(under, 0, start) + content
		if stop < width {
			out += ansi.Cut(under, stop, width)
		}
		baseLines[row] = out
	}

	return strings.Join(baseLines, "\n")
}

// Center draws top in the middle of a width x height base.
func Center(base, top string, width, height int) string {
	x := max((width-lipgloss.Width(top))/2, 0)
	y := max((height-lipgloss.Height(top))/2, 0)
	return Compose(base, top, x, y, width)
}
