// Package playlistpanel is the terminal surface of the playlist screen.
// It draws the rows pulled from the controller, the animated now playing
// bar, and hosts the player screen when one is presented.
package playlistpanel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavelist/internal/keymap"
	"github.com/llehouerou/wavelist/internal/playback"
	"github.com/llehouerou/wavelist/internal/playlistview"
	"github.com/llehouerou/wavelist/internal/ui"
	"github.com/llehouerou/wavelist/internal/ui/cursor"
	"github.com/llehouerou/wavelist/internal/ui/playerbar"
)

// Action is what a key press asked the host to do.
type Action int

const (
	ActionNone Action = iota
	ActionSelect
)

// Result is returned from Update.
type Result struct {
	Action Action
	Index  int
}

// Model implements playlistview.Surface.
type Model struct {
	ui.Base
	player playback.Service

	rows  playlistview.RowSource
	count int

	cursor   cursor.Cursor
	nav      cursor.KeyMap
	keys     *keymap.Resolver
	selected int

	anim   animator
	detail playlistview.Detail

	now func() time.Time
}

var _ playlistview.Surface = (*Model)(nil)

// New returns an empty panel reading bar state from player.
func New(player playback.Service) *Model {
	m := &Model{
		player:   player,
		cursor:   cursor.New(ui.ScrollMargin),
		nav:      cursor.DefaultKeyMap(),
		keys:     keymap.NewResolver(keymap.ContextPlaylist),
		selected: -1,
		now:      time.Now,
	}
	m.anim.now = func() time.Time { return m.now() }
	m.SetFocused(true)
	return m
}

// SetSize resizes the panel and any presented detail.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	if m.detail != nil {
		m.detail.SetSize(width, height)
	}
	m.cursor.EnsureVisible(m.count, m.listHeight())
}

// ReloadRows re-pulls every row from rows.
func (m *Model) ReloadRows(rows playlistview.RowSource) {
	m.rows = rows
	m.count = rows.RowCount()
	m.cursor.ClampToBounds(m.count)
	m.cursor.EnsureVisible(m.count, m.listHeight())
	if m.selected >= m.count {
		m.selected = -1
	}
}

// DeselectRow clears the highlight left by a selection.
func (m *Model) DeselectRow(index int) {
	if m.selected == index {
		m.selected = -1
	}
}

// SetAffordance moves the now playing bar toward a.
func (m *Model) SetAffordance(a playlistview.Affordance, t playlistview.Transition) tea.Cmd {
	return m.anim.set(a, t)
}

// PresentDetail shows d over the list.
func (m *Model) PresentDetail(d playlistview.Detail) tea.Cmd {
	m.detail = d
	d.SetSize(m.Width(), m.Height())
	return d.Init()
}

// DismissDetail returns to the list.
func (m *Model) DismissDetail() {
	m.detail = nil
}

// DetailPresented reports whether a detail covers the list.
func (m *Model) DetailPresented() bool {
	return m.detail != nil
}

// Affordance returns the bar as currently drawn.
func (m *Model) Affordance() playlistview.Affordance {
	return m.anim.current()
}

// Animating reports whether an affordance transition is in flight.
func (m *Model) Animating() bool {
	return m.anim.running
}

// Selected returns the highlighted row, or -1.
func (m *Model) Selected() int {
	return m.selected
}

// CursorPos returns the row under the cursor.
func (m *Model) CursorPos() int {
	return m.cursor.Pos()
}

func (m *Model) barHeight() int {
	return min(m.anim.current().Height, playerbar.Height)
}

func (m *Model) listHeight() int {
	return max(m.Height()-m.barHeight()-ui.PanelOverhead, 0)
}

// Update handles animation frames, list keys, and forwards everything
// else to a presented detail.
func (m *Model) Update(msg tea.Msg) (Result, tea.Cmd) {
	none := Result{Index: -1}
	if msg, ok := msg.(frameMsg); ok {
		return none, m.anim.step(msg)
	}
	if m.detail != nil {
		return none, m.detail.Update(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return none, nil
	}
	if m.cursor.HandleKey(keyMsg, m.nav, m.count, m.listHeight()) {
		return none, nil
	}
	if m.keys.Resolve(keyMsg) == keymap.ActionSelect && m.count > 0 {
		m.selected = m.cursor.Pos()
		return Result{Action: ActionSelect, Index: m.selected}, nil
	}
	return none, nil
}
