// Package keymap defines the key bindings of the application and resolves
// key presses to actions.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a user-triggerable action.
type Action string

const (
	ActionNone        Action = ""
	ActionQuit        Action = "quit"
	ActionHelp        Action = "help"
	ActionSelect      Action = "select"
	ActionShowPlayer  Action = "show_player"
	ActionDismiss     Action = "dismiss"
	ActionPlayPause   Action = "play_pause"
	ActionStop        Action = "stop"
	ActionNextTrack   Action = "next_track"
	ActionPrevTrack   Action = "prev_track"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
)

// Context scopes a binding to a screen.
type Context string

const (
	ContextGlobal   Context = "global"
	ContextPlaylist Context = "playlist"
	ContextPlayer   Context = "player"
	ContextPlayback Context = "playback"
)

// Binding ties a key binding to an action in a context.
type Binding struct {
	Action  Action
	Key     key.Binding
	Context Context
}

func bind(a Action, c Context, help, desc string, keys ...string) Binding {
	return Binding{Action: a, Context: c, Key: key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))}
}

// All lists every binding.
var All = []Binding{
	bind(ActionQuit, ContextGlobal, "q", "quit", "q", "ctrl+c"),
	bind(ActionHelp, ContextGlobal, "?", "help", "?"),

	bind(ActionSelect, ContextPlaylist, "enter", "play from here", "enter"),
	bind(ActionShowPlayer, ContextPlaylist, "p", "player", "p", "tab"),

	bind(ActionDismiss, ContextPlayer, "esc", "back", "esc", "backspace"),

	bind(ActionPlayPause, ContextPlayback, "space", "play/pause", " "),
	bind(ActionStop, ContextPlayback, "s", "stop", "s"),
	bind(ActionNextTrack, ContextPlayback, "n", "next", "n", "pgdown"),
	bind(ActionPrevTrack, ContextPlayback, "b", "previous", "b", "pgup"),
	bind(ActionSeekForward, ContextPlayback, "→", "+5s", "right", "shift+right"),
	bind(ActionSeekBack, ContextPlayback, "←", "-5s", "left", "shift+left"),
}

// ByContext returns the bindings of one context.
func ByContext(c Context) []Binding {
	var out []Binding
	for _, b := range All {
		if b.Context == c {
			out = append(out, b)
		}
	}
	return out
}

// Resolver maps key presses to actions for a set of contexts.
type Resolver struct {
	bindings []Binding
}

// NewResolver resolves the bindings of the given contexts. Earlier
// contexts win when two bindings share a key.
func NewResolver(contexts ...Context) *Resolver {
	r := &Resolver{}
	for _, c := range contexts {
		r.bindings = append(r.bindings, ByContext(c)...)
	}
	return r
}

// Resolve returns the action bound to msg, or ActionNone.
func (r *Resolver) Resolve(msg tea.KeyMsg) Action {
	for _, b := range r.bindings {
		if key.Matches(msg, b.Key) {
			return b.Action
		}
	}
	return ActionNone
}

// ShortHelp implements help.KeyMap.
func (r *Resolver) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, b.Key)
	}
	return out
}

// FullHelp implements help.KeyMap, one column per context.
func (r *Resolver) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	var last Context
	for _, b := range r.bindings {
		if len(cols) == 0 || b.Context != last {
			cols = append(cols, nil)
			last = b.Context
		}
		cols[len(cols)-1] = append(cols[len(cols)-1], b.Key)
	}
	return cols
}
