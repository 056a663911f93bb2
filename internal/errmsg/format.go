// Package errmsg formats errors for the status line.
package errmsg

import (
	"fmt"
	"path/filepath"
)

// Op names an operation that can fail.
type Op string

const (
	// Playback
	OpPlaybackStart  Op = "start playback"
	OpPlaybackToggle Op = "toggle playback"
	OpPlaybackStop   Op = "stop playback"
	OpPlaybackSkip   Op = "skip track"
	OpPlaybackSeek   Op = "seek"

	// Playlist
	OpManifestLoad Op = "load playlist manifest"
	OpPlaylistLoad Op = "load playlist"

	// History
	OpHistoryOpen   Op = "open play history"
	OpHistoryRecord Op = "record play"

	// Startup
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// PlaybackOp maps the operation name carried by a playback error event.
func PlaybackOp(operation string) Op {
	switch operation {
	case "play":
		return OpPlaybackStart
	case "seek":
		return OpPlaybackSeek
	case "toggle":
		return OpPlaybackToggle
	case "stop":
		return OpPlaybackStop
	case "next", "previous":
		return OpPlaybackSkip
	default:
		return Op(operation)
	}
}

// Format creates a user-facing message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith adds the subject of the operation, typically a file.
// Paths are shortened to their base name.
func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	if subject == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, filepath.Base(subject), err)
}
