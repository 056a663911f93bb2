package nowplaying

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavelist/internal/ui"
	"github.com/llehouerou/wavelist/internal/ui/playerbar"
	"github.com/llehouerou/wavelist/internal/ui/render"
	"github.com/llehouerou/wavelist/internal/ui/styles"
)

const (
	artCols = 16
	artRows = 6
)

// View renders the player screen.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()
	innerWidth := max(m.Width()-ui.BorderHeight, 0)
	metaWidth := max(innerWidth-artCols-2, 0)

	var meta []string
	if !m.bar.Active {
		meta = append(meta, t.S().Muted.Render("Nothing playing"))
	} else {
		meta = append(meta,
			styles.ApplyBoldGradient(render.TruncateEllipsis(render.Sanitize(m.bar.Title), metaWidth), t.Primary, t.Secondary),
			t.S().Base.Render(render.TruncateEllipsis(render.Sanitize(orUnknown(m.bar.Artist, "Unknown Artist")), metaWidth)),
			t.S().Muted.Render(render.TruncateEllipsis(render.Sanitize(orUnknown(m.bar.Album, "Unknown Album")), metaWidth)),
			"",
			t.S().Subtle.Render(fmt.Sprintf("Track %d of %d", m.index+1, m.total)),
		)
	}
	for len(meta) < artRows {
		meta = append(meta, "")
	}

	art := strings.Split(artwork(m.artID), "\n")
	lines := make([]string, 0, artRows+6)
	for i := range artRows {
		lines = append(lines, art[i]+"  "+meta[i])
	}
	lines = append(lines, "")
	if m.bar.Active {
		lines = append(lines, playerbar.RenderProgressBar(m.bar.Position, m.bar.Duration, innerWidth, m.bar.Playing))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, "")
	if m.status != "" {
		lines = append(lines, t.S().Error.Render(render.TruncateEllipsis(m.status, innerWidth)))
	}

	body := strings.Join(lines, "\n")
	helpLine := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := max(m.Height()-ui.BorderHeight-lipgloss.Height(body)-1, 0)
	content := body + strings.Repeat("\n", gap+1) + render.TruncateEllipsis(helpLine, innerWidth)

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

// artwork draws a framed placeholder labelled with the artwork id.
func artwork(id string) string {
	label := "no artwork"
	if id != "" {
		label = id
	}
	label = render.TruncateEllipsis(render.Sanitize(label), artCols-2)
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.T().FgSubtle).
		Foreground(styles.T().FgMuted).
		Width(artCols-2).
		Height(artRows-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(label)
	return box
}

func orUnknown(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
