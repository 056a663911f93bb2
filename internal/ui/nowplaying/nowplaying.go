// Package nowplaying is the player screen presented over the playlist.
//
// The screen shares the playback service and notifier of the playlist
// screen. It takes its own subscription in New and releases it in Close.
package nowplaying

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavelist/internal/errmsg"
	"github.com/llehouerou/wavelist/internal/keymap"
	"github.com/llehouerou/wavelist/internal/playback"
	"github.com/llehouerou/wavelist/internal/ui"
	"github.com/llehouerou/wavelist/internal/ui/playerbar"
)

const (
	tickInterval = time.Second
	seekStep     = 5 * time.Second
)

// DismissMsg asks the host to close the player screen.
type DismissMsg struct{}

type eventMsg struct {
	sub *playback.Subscription
}

type errorMsg struct {
	sub   *playback.Subscription
	event playback.ErrorEvent
}

type tickMsg struct {
	sub *playback.Subscription
}

// Model is the player screen.
type Model struct {
	ui.Base
	player   playback.Service
	notifier playback.Notifier
	sub      *playback.Subscription
	keys     *keymap.Resolver
	help     help.Model

	bar    playerbar.State
	index  int
	total  int
	artID  string
	status string
}

// New subscribes to notifier and snapshots the player state.
func New(player playback.Service, notifier playback.Notifier) *Model {
	if notifier == nil {
		notifier = player
	}
	m := &Model{
		player:   player,
		notifier: notifier,
		sub:      notifier.Subscribe(),
		keys:     keymap.NewResolver(keymap.ContextPlayer, keymap.ContextPlayback),
		help:     help.New(),
	}
	m.SetFocused(true)
	m.refresh()
	return m
}

// Init starts watching events and the position ticker.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.watch(), m.tick())
}

// Close releases the subscription. Safe to call more than once.
func (m *Model) Close() {
	if m.sub == nil {
		return
	}
	m.notifier.Unsubscribe(m.sub)
	m.sub = nil
}

// Closed reports whether Close was called.
func (m *Model) Closed() bool {
	return m.sub == nil
}

func (m *Model) own(sub *playback.Subscription) bool {
	return sub != nil && sub == m.sub
}

func (m *Model) watch() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-sub.TrackChanged:
			return eventMsg{sub: sub}
		case <-sub.StateChanged:
			return eventMsg{sub: sub}
		case e := <-sub.Error:
			return errorMsg{sub: sub, event: e}
		case <-sub.Done:
			return nil
		}
	}
}

func (m *Model) tick() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{sub: sub}
	})
}

func (m *Model) refresh() {
	m.bar = playerbar.NewState(m.player)
	m.index = m.player.CurrentIndex()
	m.total = len(m.player.Items())
	m.artID = ""
	if item, ok := m.player.CurrentItem(); ok {
		m.artID = item.Artwork()
	}
}

// Update handles keys and the screen's own events.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case eventMsg:
		if !m.own(msg.sub) {
			return nil
		}
		m.refresh()
		return m.watch()
	case errorMsg:
		if !m.own(msg.sub) {
			return nil
		}
		m.status = errmsg.FormatWith(errmsg.PlaybackOp(msg.event.Operation), msg.event.Path, msg.event.Err)
		return m.watch()
	case tickMsg:
		if !m.own(msg.sub) {
			return nil
		}
		m.refresh()
		return m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	var err error
	var op errmsg.Op
	switch m.keys.Resolve(msg) {
	case keymap.ActionDismiss:
		return func() tea.Msg { return DismissMsg{} }
	case keymap.ActionPlayPause:
		op, err = errmsg.OpPlaybackToggle, m.player.Toggle()
	case keymap.ActionStop:
		op, err = errmsg.OpPlaybackStop, m.player.Stop()
	case keymap.ActionNextTrack:
		op, err = errmsg.OpPlaybackSkip, m.player.Next()
	case keymap.ActionPrevTrack:
		op, err = errmsg.OpPlaybackSkip, m.player.Previous()
	case keymap.ActionSeekForward:
		op, err = errmsg.OpPlaybackSeek, m.player.Seek(seekStep)
	case keymap.ActionSeekBack:
		op, err = errmsg.OpPlaybackSeek, m.player.Seek(-seekStep)
	default:
		return nil
	}
	m.status = errmsg.Format(op, err)
	m.refresh()
	return nil
}
