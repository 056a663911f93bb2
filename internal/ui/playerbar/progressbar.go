package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavelist/internal/ui"
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// RenderProgressBar renders a block-style progress line:
// ▶  1:23  ▓▓▓▓▓░░░░░  4:56
func RenderProgressBar(position, duration time.Duration, width int, playing bool) string {
	status := playSymbol
	if !playing {
		status = pauseSymbol
	}
	posStr := formatDuration(position)
	durStr := formatDuration(duration)

	fixed := lipgloss.Width(status) + lipgloss.Width(posStr) + lipgloss.Width(durStr) + 6
	barWidth := width - fixed
	if barWidth < ui.MinProgressBarWidth {
		return status + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if duration > 0 {
		ratio = min(float64(position)/float64(duration), 1)
	}
	filled := int(float64(barWidth) * ratio)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, barWidth-filled)

	return status + "  " + posStr + "  " + bar + "  " + durStr
}
