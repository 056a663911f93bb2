// Package styles holds the color theme and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette of the application.
type Theme struct {
	Primary   lipgloss.Color // focus, current track
	Secondary lipgloss.Color // paused track, accents

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgBase   lipgloss.Color // what the affordance fades into
	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Error lipgloss.Color

	styles *Styles
}

// Styles are prebuilt from a Theme.
type Styles struct {
	Base     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Title    lipgloss.Style
	Playing  lipgloss.Style
	Paused   lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgBase:   lipgloss.Color("#1a1a1a"),
	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Error: lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the styles built from t.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	return &Styles{
		Base:     base,
		Muted:    lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:   lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:    base.Bold(true),
		Playing:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Paused:   lipgloss.NewStyle().Foreground(t.Secondary),
		Cursor:   lipgloss.NewStyle().Background(t.BgCursor).Foreground(t.FgBase),
		Selected: lipgloss.NewStyle().Background(t.Primary).Foreground(t.BgBase),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
	}
}

// PanelStyle is the rounded border of a panel.
func PanelStyle(focused bool) lipgloss.Style {
	border := T().Border
	if focused {
		border = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
