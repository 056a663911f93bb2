package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyBoldGradient renders bold text with a horizontal color gradient,
// blended per grapheme cluster in HCL space.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return lipgloss.NewStyle().Bold(true).Foreground(from).Render(text)
	}

	c1 := toColorful(from)
	c2 := toColorful(to)
	var b strings.Builder
	for i, cluster := range clusters {
		t := float64(i) / float64(len(clusters)-1)
		c := lipgloss.Color(c1.BlendHcl(c2, t).Clamped().Hex())
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(c).Render(cluster))
	}
	return b.String()
}

// Fade blends fg toward bg as opacity drops from 1 to 0.
func Fade(fg, bg lipgloss.Color, opacity float64) lipgloss.Color {
	switch {
	case opacity >= 1:
		return fg
	case opacity <= 0:
		return bg
	}
	return lipgloss.Color(toColorful(bg).BlendRgb(toColorful(fg), opacity).Clamped().Hex())
}

// toColorful parses "#rrggbb" colors. ANSI palette colors map to a
// neutral gray.
func toColorful(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	gray, _ := colorful.MakeColor(color.Gray{Y: 128})
	return gray
}
