package history

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavelist/internal/playback"
	"github.com/llehouerou/wavelist/internal/player"
	"github.com/llehouerou/wavelist/internal/playlist"
)

func openTest(t *testing.T) *Manager {
	t.Helper()
	m, err := Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestRecordAndPlayStats(t *testing.T) {
	m := openTest(t)
	first := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	require.NoError(t, m.Record("/m/alps.mp3", second))
	require.NoError(t, m.Record("/m/alps.mp3", first))

	count, last := m.PlayStats("/m/alps.mp3")
	assert.Equal(t, 2, count)
	assert.True(t, last.Equal(second), "last = %v, want %v", last, second)

	count, last = m.PlayStats("/m/you.mp3")
	assert.Zero(t, count)
	assert.True(t, last.IsZero())

	s, err := m.Stats("/m/alps.mp3")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Count)
	assert.True(t, s.Last.Equal(second))

	s, err = m.Stats("/m/you.mp3")
	require.NoError(t, err)
	assert.Equal(t, Stats{}, s)
}

func TestOpen_ReloadsStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	at := time.Date(2026, 9, 30, 22, 15, 0, 0, time.UTC)

	m, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, m.Record("/m/bridge.mp3", at))
	require.NoError(t, m.Close())

	m, err = Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	count, last := m.PlayStats("/m/bridge.mp3")
	assert.Equal(t, 1, count)
	assert.True(t, last.Equal(at))
}

func TestRecord_AfterClose(t *testing.T) {
	m := openTest(t)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.ErrorIs(t, m.Record("/m/alps.mp3", time.Now()), ErrClosed)
}

func TestFollow_RecordsTrackStarts(t *testing.T) {
	m := openTest(t)
	svc := playback.New(player.NewMock(), nil)
	t.Cleanup(func() { _ = svc.Close() })

	stop := m.Follow(context.Background(), svc)
	t.Cleanup(stop)

	items := []playlist.Item{
		playlist.NewItem("/m/a.mp3", "A", "", "", ""),
		playlist.NewItem("/m/b.mp3", "B", "", "", ""),
	}
	require.NoError(t, svc.PlayItems(items, items[0]))
	require.NoError(t, svc.Next())
	require.NoError(t, svc.Stop())

	require.Eventually(t, func() bool {
		a, _ := m.PlayStats("/m/a.mp3")
		b, _ := m.PlayStats("/m/b.mp3")
		return a == 1 && b == 1
	}, time.Second, 5*time.Millisecond)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFollow_LogsRecordFailure(t *testing.T) {
	var out syncBuffer
	m, err := Open(":memory:", log.New(&out))
	require.NoError(t, err)
	svc := playback.New(player.NewMock(), nil)
	t.Cleanup(func() { _ = svc.Close() })

	stop := m.Follow(context.Background(), svc)
	t.Cleanup(stop)
	require.NoError(t, m.Close())

	items := []playlist.Item{playlist.NewItem("/m/alps.mp3", "Alps", "", "", "")}
	require.NoError(t, svc.PlayItems(items, items[0]))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Failed to record play 'alps.mp3'")
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, out.String(), ErrClosed.Error())
}

type countingNotifier struct {
	playback.Notifier
	subs []*playback.Subscription
}

func (n *countingNotifier) Subscribe() *playback.Subscription {
	sub := n.Notifier.Subscribe()
	n.subs = append(n.subs, sub)
	return sub
}

func TestFollow_StopReleasesSubscription(t *testing.T) {
	m := openTest(t)
	svc := playback.New(player.NewMock(), nil)
	t.Cleanup(func() { _ = svc.Close() })
	n := &countingNotifier{Notifier: svc}

	stop := m.Follow(context.Background(), n)
	stop()
	stop()

	require.Len(t, n.subs, 1)
	assert.True(t, n.subs[0].Closed())

	items := []playlist.Item{playlist.NewItem("/m/a.mp3", "A", "", "", "")}
	require.NoError(t, svc.PlayItems(items, items[0]))
	count, _ := m.PlayStats("/m/a.mp3")
	assert.Zero(t, count)
}

func TestFollow_EndsWhenServiceCloses(t *testing.T) {
	m := openTest(t)
	svc := playback.New(player.NewMock(), nil)

	stop := m.Follow(context.Background(), svc)
	require.NoError(t, svc.Close())

	done := make(chan struct{})
	go func() {
		stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not return after the service closed")
	}
}
