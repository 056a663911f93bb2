package nowplaying

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavelist/internal/playback"
	"github.com/llehouerou/wavelist/internal/player"
	"github.com/llehouerou/wavelist/internal/playlist"
	"github.com/llehouerou/wavelist/internal/ui/testutil"
)

func testItems() []playlist.Item {
	return []playlist.Item{
		playlist.NewItem("/m/only-place.mp3", "The Only Place", "The Only Place", "Best Coast", "only-place"),
		playlist.NewItem("/m/bridge.mp3", "Before the Bridge", "On the Water", "Future Islands", "bridge.jpg"),
		playlist.NewItem("/m/alps.mp3", "Alps", "Alps", "Motorama", ""),
	}
}

func newTestModel(t *testing.T) (*Model, playback.Service, *player.Mock) {
	t.Helper()
	mock := player.NewMock()
	svc := playback.New(mock, nil)
	t.Cleanup(func() { _ = svc.Close() })
	m := New(svc, nil)
	t.Cleanup(m.Close)
	m.SetSize(70, 16)
	return m, svc, mock
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_Subscribes(t *testing.T) {
	m, _, _ := newTestModel(t)

	require.NotNil(t, m.sub)
	assert.False(t, m.Closed())
	assert.NotNil(t, m.Init())
}

func TestClose_Unsubscribes(t *testing.T) {
	m, svc, _ := newTestModel(t)
	sub := m.sub

	m.Close()
	m.Close()

	assert.True(t, sub.Closed())
	assert.True(t, m.Closed())
	assert.Nil(t, m.watch())
	assert.Nil(t, m.tick())

	items := testItems()
	require.NoError(t, svc.PlayItems(items, items[0]))
	assert.Nil(t, m.Update(eventMsg{sub: sub}), "events after Close must be ignored")
	assert.False(t, m.bar.Active)
}

func TestWatch_RefreshesOnEvent(t *testing.T) {
	m, svc, _ := newTestModel(t)
	items := testItems()
	require.NoError(t, svc.PlayItems(items, items[1]))

	msg := m.watch()()
	ev, ok := msg.(eventMsg)
	require.True(t, ok, "watch() returned %T", msg)

	assert.NotNil(t, m.Update(ev), "event should re-arm the watch")
	assert.True(t, m.bar.Active)
	assert.Equal(t, "Before the Bridge", m.bar.Title)
	assert.Equal(t, 1, m.index)
	assert.Equal(t, 3, m.total)
	assert.Equal(t, "bridge.jpg", m.artID)
}

func TestUpdate_IgnoresForeignSubscription(t *testing.T) {
	m, svc, _ := newTestModel(t)
	other := svc.Subscribe()
	items := testItems()
	require.NoError(t, svc.PlayItems(items, items[0]))

	assert.Nil(t, m.Update(eventMsg{sub: other}))
	assert.Nil(t, m.Update(tickMsg{sub: other}))
	assert.False(t, m.bar.Active, "foreign event must not refresh")
}

func TestUpdate_Tick(t *testing.T) {
	m, svc, mock := newTestModel(t)
	items := testItems()
	require.NoError(t, svc.PlayItems(items, items[0]))
	mock.SetDuration(2 * time.Minute)
	mock.SetPosition(30 * time.Second)

	cmd := m.Update(tickMsg{sub: m.sub})

	assert.NotNil(t, cmd, "tick should re-arm while open")
	assert.Equal(t, 30*time.Second, m.bar.Position)
}

func TestUpdate_ErrorEvent(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.Update(errorMsg{sub: m.sub, event: playback.ErrorEvent{
		Operation: "play",
		Path:      "/m/alps.mp3",
		Err:       errors.New("unsupported format"),
	}})

	assert.Equal(t, "Failed to start playback 'alps.mp3': unsupported format", m.status)
	assert.Contains(t, testutil.StripANSI(m.View()), "unsupported format")
}

func TestKeys(t *testing.T) {
	m, svc, mock := newTestModel(t)
	items := testItems()
	require.NoError(t, svc.PlayItems(items, items[0]))

	m.Update(key("space"))
	assert.Equal(t, playback.StatePaused, svc.State())
	assert.False(t, m.bar.Playing)

	m.Update(key("space"))
	assert.Equal(t, playback.StatePlaying, svc.State())

	m.Update(key("n"))
	assert.Equal(t, 1, svc.CurrentIndex())

	m.Update(key("b"))
	assert.Equal(t, 0, svc.CurrentIndex())

	m.Update(key("right"))
	m.Update(key("left"))
	assert.Equal(t, []time.Duration{seekStep, -seekStep}, mock.SeekCalls())

	m.Update(key("s"))
	assert.Equal(t, playback.StateStopped, svc.State())
	assert.False(t, m.bar.Active)
}

func TestKeys_Dismiss(t *testing.T) {
	m, _, _ := newTestModel(t)

	cmd := m.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, DismissMsg{}, cmd())
	assert.False(t, m.Closed(), "dismiss is the host's decision")
}

func TestKeys_ErrorShownInStatus(t *testing.T) {
	m, svc, mock := newTestModel(t)
	items := testItems()
	require.NoError(t, svc.PlayItems(items, items[0]))
	mock.SetPlayError(errors.New("device busy"))

	m.Update(key("n"))

	assert.True(t, strings.HasPrefix(m.status, "Failed to skip track"), "status = %q", m.status)
}

func TestView(t *testing.T) {
	m, svc, mock := newTestModel(t)

	idle := testutil.StripANSI(m.View())
	assert.Contains(t, idle, "Nothing playing")
	assert.Contains(t, idle, "no artwork")

	items := testItems()
	require.NoError(t, svc.PlayItems(items, items[1]))
	mock.SetDuration(4 * time.Minute)
	mock.SetPosition(time.Minute)
	m.refresh()

	out := testutil.StripANSI(m.View())
	for _, want := range []string{"Before the Bridge", "Future Islands", "On the Water", "Track 2 of 3", "bridge.jpg", "1:00", "4:00", "esc"} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 16, len(strings.Split(out, "\n")), "view should fill the height")
}
