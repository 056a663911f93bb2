package playlistpanel

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/wavelist/internal/playback"
	"github.com/llehouerou/wavelist/internal/playlistview"
	"github.com/llehouerou/wavelist/internal/ui"
	"github.com/llehouerou/wavelist/internal/ui/playerbar"
	"github.com/llehouerou/wavelist/internal/ui/render"
	"github.com/llehouerou/wavelist/internal/ui/styles"
)

const (
	playingSymbol = "▶"
	pausedSymbol  = "⏸"
	currentSymbol = "•"

	barHint = "p: player"
)

// View renders the list and the now playing bar, or the presented detail.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	if m.detail != nil {
		return m.detail.View()
	}

	aff := m.anim.current()
	barHeight := m.barHeight()
	list := m.renderList(m.Height() - barHeight)
	if barHeight == 0 {
		return list
	}

	state := playerbar.NewState(m.player)
	state.Hint = barHint
	bar := playerbar.Render(state, m.Width(), barHeight, aff.Opacity)
	if bar == "" {
		bar = strings.TrimSuffix(strings.Repeat(render.EmptyLine(m.Width())+"\n", barHeight), "\n")
	}
	return list + "\n" + bar
}

func (m *Model) renderList(height int) string {
	innerWidth := max(m.Width()-ui.BorderHeight, 0)
	listHeight := max(height-ui.PanelOverhead, 0)

	lines := make([]string, 0, listHeight+2)
	lines = append(lines, m.renderHeader(innerWidth), render.Separator(innerWidth))

	start, end := m.cursor.VisibleRange(m.count, listHeight)
	now := m.now()
	for i := range listHeight {
		idx := start + i
		if idx >= end {
			lines = append(lines, render.EmptyLine(innerWidth))
			continue
		}
		lines = append(lines, m.renderRow(m.rows.RowContent(idx), innerWidth, now))
	}

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderHeader(width int) string {
	title := styles.T().S().Title.Render("Playlist")
	right := fmt.Sprintf("%d tracks", m.count)
	if idx := m.player.CurrentIndex(); idx >= 0 {
		right = fmt.Sprintf("%d/%d", idx+1, m.count)
	}
	return render.Row(title, styles.T().S().Muted.Render(right), width)
}

func (m *Model) renderRow(row playlistview.Row, width int, now time.Time) string {
	prefix := "  "
	if row.IsCurrent() {
		switch row.State() {
		case playback.StatePlaying:
			prefix = playingSymbol + " "
		case playback.StatePaused:
			prefix = pausedSymbol + " "
		case playback.StateStopped:
			prefix = currentSymbol + " "
		}
	}

	stats := playStats(row, now)
	statsWidth := 0
	if stats != "" {
		stats = " " + stats
		statsWidth = lipgloss.Width(stats)
	}

	contentWidth := max(width-lipgloss.Width(prefix)-statsWidth, 0)
	titleWidth := contentWidth / 2
	line := prefix +
		render.TruncateAndPad(row.Item.Track(), titleWidth) +
		render.TruncateAndPad(row.Item.Subtitle(), contentWidth-titleWidth) +
		stats
	line = render.Pad(line, width)

	return m.rowStyle(row).Render(line)
}

func (m *Model) rowStyle(row playlistview.Row) lipgloss.Style {
	s := styles.T().S()
	isCursor := m.IsFocused() && row.Index == m.cursor.Pos()
	switch {
	case row.Index == m.selected:
		return s.Selected
	case isCursor && row.IsCurrent():
		return s.Cursor.Inherit(s.Playing)
	case isCursor:
		return s.Cursor
	case row.State() == playback.StatePaused:
		return s.Paused
	case row.IsCurrent():
		return s.Playing
	default:
		return s.Base
	}
}

// playStats renders "3 plays · 2 hours ago", or "" for unplayed items.
func playStats(row playlistview.Row, now time.Time) string {
	count, last := row.PlayStats()
	if count == 0 {
		return ""
	}
	plays := humanize.Comma(int64(count)) + " plays"
	if count == 1 {
		plays = "1 play"
	}
	if last.IsZero() {
		return plays
	}
	return plays + " · " + humanize.RelTime(last, now, "ago", "from now")
}
