package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavelist/internal/app/handler"
	"github.com/llehouerou/wavelist/internal/errmsg"
	"github.com/llehouerou/wavelist/internal/keymap"
	"github.com/llehouerou/wavelist/internal/playlistview"
	"github.com/llehouerou/wavelist/internal/stderr"
	"github.com/llehouerou/wavelist/internal/ui/nowplaying"
	"github.com/llehouerou/wavelist/internal/ui/playlistpanel"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case playlistview.ChangedMsg:
		return m, m.Controller.Update(msg)

	case playlistview.PlaybackErrorMsg:
		if msg.Sub == m.Controller.Subscription() {
			m.status = errmsg.FormatWith(errmsg.PlaybackOp(msg.Event.Operation), msg.Event.Path, msg.Event.Err)
		}
		return m, m.Controller.Update(msg)

	case stderr.LineMsg:
		m.status = string(msg)
		return m, stderr.Listen(m.stderr)

	case nowplaying.DismissMsg:
		m.Controller.DismissDetail()
		return m, nil

	case TickMsg:
		return m, tick()

	case tea.KeyMsg:
		_, cmd := handler.Chain(msg,
			m.handleGlobalKeys,
			m.handleDetailKeys,
			m.handlePlaybackKeys,
			m.handlePlaylistKeys,
		)
		return m, cmd
	}

	_, cmd := m.Panel.Update(msg)
	return m, cmd
}

func (m *Model) resize() {
	m.help.Width = max(m.Width-4, 0)
	m.Panel.SetSize(m.Width, max(m.Height-statusHeight, 0))
}

func (m *Model) handleGlobalKeys(msg tea.KeyMsg) handler.Result {
	switch m.keys.Resolve(msg) { //nolint:exhaustive // global actions only
	case keymap.ActionQuit:
		m.Shutdown()
		return handler.Handled(tea.Quit)
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

// handleDetailKeys hands every other key to the player screen while it
// is presented.
func (m *Model) handleDetailKeys(msg tea.KeyMsg) handler.Result {
	if !m.Panel.DetailPresented() {
		return handler.NotHandled
	}
	_, cmd := m.Panel.Update(msg)
	return handler.Handled(cmd)
}

func (m *Model) handlePlaybackKeys(msg tea.KeyMsg) handler.Result {
	var op errmsg.Op
	var err error
	switch m.keys.Resolve(msg) { //nolint:exhaustive // playback actions only
	case keymap.ActionPlayPause:
		op, err = errmsg.OpPlaybackToggle, m.Player.Toggle()
	case keymap.ActionStop:
		op, err = errmsg.OpPlaybackStop, m.Player.Stop()
	case keymap.ActionNextTrack:
		op, err = errmsg.OpPlaybackSkip, m.Player.Next()
	case keymap.ActionPrevTrack:
		op, err = errmsg.OpPlaybackSkip, m.Player.Previous()
	case keymap.ActionSeekForward:
		op, err = errmsg.OpPlaybackSeek, m.Player.Seek(seekStep)
	case keymap.ActionSeekBack:
		op, err = errmsg.OpPlaybackSeek, m.Player.Seek(-seekStep)
	default:
		return handler.NotHandled
	}
	m.status = errmsg.Format(op, err)
	return handler.HandledNoCmd
}

func (m *Model) handlePlaylistKeys(msg tea.KeyMsg) handler.Result {
	if m.keys.Resolve(msg) == keymap.ActionShowPlayer {
		return handler.Handled(m.Controller.ShowDetail())
	}
	res, cmd := m.Panel.Update(msg)
	if res.Action == playlistpanel.ActionSelect {
		m.status = ""
		m.Controller.SelectRow(res.Index)
	}
	return handler.Handled(cmd)
}
