package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavelist/internal/ui/overlay"
	"github.com/llehouerou/wavelist/internal/ui/render"
	"github.com/llehouerou/wavelist/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	view := m.Panel.View() + "\n" + m.renderStatus()
	if m.showHelp {
		view = overlay.Center(view, m.renderHelp(), m.Width, m.Height)
	}
	return view
}

func (m Model) renderStatus() string {
	t := styles.T()
	if m.status == "" {
		return t.S().Subtle.Render(render.Pad("? help", m.Width))
	}
	return t.S().Error.Render(render.TruncateAndPad(m.status, m.Width))
}

func (m Model) renderHelp() string {
	t := styles.T()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1).
		Render(m.help.FullHelpView(m.keys.FullHelp()))
}
