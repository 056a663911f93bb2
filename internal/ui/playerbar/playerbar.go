// Package playerbar renders the now playing bar at the bottom of the
// playlist screen. The bar is the affordance that opens the player screen.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavelist/internal/playback"
	"github.com/llehouerou/wavelist/internal/ui/render"
	"github.com/llehouerou/wavelist/internal/ui/styles"
)

// Height is the full height of the bar: border, content, border.
const Height = 3

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	stopSymbol  = "■"
)

// State holds everything needed to render the bar.
type State struct {
	Active   bool
	Playing  bool
	Title    string
	Artist   string
	Album    string
	Position time.Duration
	Duration time.Duration
	Hint     string
}

// NewState reads the current item and position from svc. The zero State
// is returned when nothing is current.
func NewState(svc playback.Service) State {
	item, ok := svc.CurrentItem()
	if !ok {
		return State{}
	}
	return State{
		Active:   true,
		Playing:  svc.IsPlaying(),
		Title:    item.Track(),
		Artist:   item.Artist(),
		Album:    item.Album(),
		Position: svc.Position(),
		Duration: svc.Duration(),
	}
}

// Render draws the bar width cells wide, showing only its first height
// lines and fading its colors toward the background by opacity.
func Render(s State, width, height int, opacity float64) string {
	if height <= 0 || opacity <= 0 || width < 4 {
		return ""
	}
	height = min(height, Height)
	t := styles.T()
	fade := func(c lipgloss.Color) lipgloss.Color { return styles.Fade(c, t.BgBase, opacity) }

	innerWidth := max(width-4, 0) // border and padding
	status := stopSymbol
	switch {
	case s.Playing:
		status = playSymbol
	case s.Active:
		status = pauseSymbol
	}

	title := s.Title
	if title == "" {
		title = "Nothing playing"
	}
	var info []string
	for _, part := range []string{s.Artist, s.Album} {
		if part != "" {
			info = append(info, part)
		}
	}

	right := fmt.Sprintf("%s / %s", formatDuration(s.Position), formatDuration(s.Duration))
	if s.Hint != "" {
		right += "  " + s.Hint
	}
	leftWidth := max(innerWidth-lipgloss.Width(right)-1, 0)

	left := status + "  " + title
	if len(info) > 0 {
		left += "  ·  " + strings.Join(info, " · ")
	}
	left = render.TruncateEllipsis(render.Sanitize(left), leftWidth)

	line := lipgloss.NewStyle().Foreground(fade(t.Primary)).Render(left)
	line = render.Row(line, lipgloss.NewStyle().Foreground(fade(t.FgMuted)).Render(right), innerWidth)

	bar := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(fade(t.Border)).
		Padding(0, 1).
		Width(width - 2).
		Render(line)
	return render.ClipLines(bar, height)
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
