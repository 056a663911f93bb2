package playlistview

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavelist/internal/playback"
	"github.com/llehouerou/wavelist/internal/player"
	"github.com/llehouerou/wavelist/internal/playlist"
	"github.com/llehouerou/wavelist/internal/ui/nowplaying"
)

func TestNew_SubscribesOnce(t *testing.T) {
	h := newHarness(t)

	require.Len(t, h.svc.subs, 1)
	assert.Same(t, h.svc.subs[0], h.ctrl.Subscription())
	assert.True(t, h.ctrl.Active())
	assert.Equal(t, 5, h.ctrl.RowCount())
	assert.Zero(t, h.surface.reloads, "construction must not touch the surface")
}

func TestNew_MissingResource(t *testing.T) {
	svc := &recordingService{Service: playback.New(player.NewMock(), nil)}
	t.Cleanup(func() { _ = svc.Close() })

	m := playlist.DefaultManifest()
	media := testMedia(m)
	delete(media, m.Tracks[3].Resource+".mp3")

	_, err := New(Dependencies{
		Player:   svc,
		Manifest: m,
		Resolver: playlist.NewFSResolver(media, "/media"),
		Surface:  &fakeSurface{},
	}, Options{})

	require.Error(t, err)
	var missing *playlist.MissingResourceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, m.Tracks[3].Resource+".mp3", missing.Name)
	assert.ErrorIs(t, err, playlist.ErrMissingResource)
	assert.Empty(t, svc.subs, "failed construction must not subscribe")
}

func TestNew_MissingCollaborators(t *testing.T) {
	m := playlist.DefaultManifest()
	r := playlist.NewFSResolver(testMedia(m), "/media")

	_, err := New(Dependencies{Manifest: m, Resolver: r, Surface: &fakeSurface{}}, Options{})
	assert.ErrorIs(t, err, ErrNoPlayer)

	svc := playback.New(player.NewMock(), nil)
	t.Cleanup(func() { _ = svc.Close() })
	_, err = New(Dependencies{Player: svc, Manifest: m, Resolver: r}, Options{})
	assert.ErrorIs(t, err, ErrNoSurface)
}

func TestOnCreate_ImmediateSync(t *testing.T) {
	h := newHarness(t)

	cmd := h.ctrl.OnCreate()

	assert.NotNil(t, cmd, "OnCreate should start watching")
	require.Len(t, h.surface.affordance, 1)
	call := h.surface.affordance[0]
	assert.False(t, call.Transition.IsAnimated())
	assert.Equal(t, Affordance{}, call.Affordance)
	assert.Equal(t, 1, h.surface.reloads)
	assert.Same(t, h.ctrl, h.surface.rows)
}

func TestOnPlaybackOrTrackChanged_Idempotent(t *testing.T) {
	h := newHarness(t)
	items := h.ctrl.store.Items()
	require.NoError(t, h.svc.Service.PlayItems(items, items[2]))

	h.ctrl.OnPlaybackOrTrackChanged()
	first := h.surface.lastAffordance()
	firstRows := snapshotRows(h.ctrl)

	h.ctrl.OnPlaybackOrTrackChanged()
	second := h.surface.lastAffordance()

	assert.Equal(t, first, second)
	assert.Equal(t, firstRows, snapshotRows(h.ctrl))
	assert.Equal(t, 2, h.surface.reloads)
}

func TestOnPlaybackOrTrackChanged_AffordanceFollowsCurrentItem(t *testing.T) {
	tests := []struct {
		name    string
		current bool
		want    Affordance
	}{
		{"no current item", false, Affordance{Height: 0, Opacity: 0}},
		{"current item", true, Affordance{Height: DefaultAffordanceHeight, Opacity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.current {
				items := h.ctrl.store.Items()
				require.NoError(t, h.svc.Service.PlayItems(items, items[0]))
			}

			h.ctrl.OnPlaybackOrTrackChanged()

			call := h.surface.lastAffordance()
			assert.Equal(t, tt.want, call.Affordance)
			assert.True(t, call.Transition.IsAnimated())
			assert.Equal(t, DefaultAnimationDuration, call.Transition.Duration())
			assert.Equal(t, tt.current, h.ctrl.AffordanceVisible())
		})
	}
}

func TestOnPlaybackOrTrackChanged_ReadsLiveState(t *testing.T) {
	h := newHarness(t)
	items := h.ctrl.store.Items()

	require.NoError(t, h.svc.Service.PlayItems(items, items[1]))
	h.ctrl.OnPlaybackOrTrackChanged()
	assert.True(t, h.surface.lastAffordance().Affordance.Visible())

	require.NoError(t, h.svc.Service.Stop())
	h.ctrl.OnPlaybackOrTrackChanged()
	assert.False(t, h.surface.lastAffordance().Affordance.Visible())
}

func TestOnPlaybackOrTrackChanged_CustomOptions(t *testing.T) {
	h := newHarness(t)
	h.ctrl.opts = Options{AffordanceHeight: 5, AnimationDuration: 200 * time.Millisecond}.withDefaults()
	items := h.ctrl.store.Items()
	require.NoError(t, h.svc.Service.PlayItems(items, items[0]))

	h.ctrl.OnPlaybackOrTrackChanged()

	call := h.surface.lastAffordance()
	assert.Equal(t, 5, call.Affordance.Height)
	assert.Equal(t, 200*time.Millisecond, call.Transition.Duration())
}

func TestOnPlaybackOrTrackChanged_ReentrantCallIsQueued(t *testing.T) {
	h := newHarness(t)
	reentered := false
	h.surface.onReload = func() {
		if !reentered {
			reentered = true
			assert.Nil(t, h.ctrl.OnPlaybackOrTrackChanged(), "nested call must not run")
		}
	}

	cmd := h.ctrl.OnPlaybackOrTrackChanged()

	assert.Equal(t, 1, h.surface.reloads, "nested call ran recursively")
	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, ChangedMsg{Sub: h.ctrl.Subscription(), Kind: KindRequeued}, msgs[0])

	next := h.ctrl.Update(msgs[0])
	assert.Equal(t, 2, h.surface.reloads)
	assert.Empty(t, runCmd(next), "requeued pass should not re-arm the watch")
}

func TestRowContent_Bijection(t *testing.T) {
	h := newHarness(t)
	items := h.ctrl.store.Items()

	for pass := range 2 {
		require.Equal(t, len(items), h.ctrl.RowCount(), "pass %d", pass)
		for i := range h.ctrl.RowCount() {
			row := h.ctrl.RowContent(i)
			assert.Equal(t, i, row.Index)
			assert.True(t, row.Item.Equal(items[i]), "pass %d row %d", pass, i)
		}
	}
	assert.Len(t, h.svc.subs, 1, "rows must not subscribe")
}

func TestRowContent_ReadsPlayerOnDemand(t *testing.T) {
	h := newHarness(t)
	items := h.ctrl.store.Items()
	row := h.ctrl.RowContent(2)

	assert.False(t, row.IsCurrent())
	assert.Equal(t, playback.StateStopped, row.State())

	require.NoError(t, h.svc.Service.PlayItems(items, items[2]))
	assert.True(t, row.IsCurrent())
	assert.Equal(t, playback.StatePlaying, row.State())
	assert.Equal(t, playback.StateStopped, h.ctrl.RowContent(1).State())

	require.NoError(t, h.svc.Service.Toggle())
	assert.Equal(t, playback.StatePaused, row.State())
}

type staticPlays map[string]int

func (p staticPlays) PlayStats(source string) (int, time.Time) {
	n := p[source]
	if n == 0 {
		return 0, time.Time{}
	}
	return n, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestRowContent_PlayStats(t *testing.T) {
	h := newHarness(t)
	src := h.ctrl.store.At(0).Source()
	h.ctrl.plays = staticPlays{src: 4}

	count, last := h.ctrl.RowContent(0).PlayStats()
	assert.Equal(t, 4, count)
	assert.False(t, last.IsZero())

	count, last = h.ctrl.RowContent(1).PlayStats()
	assert.Zero(t, count)
	assert.True(t, last.IsZero())
}

func TestSelectRow_Delegates(t *testing.T) {
	for _, index := range []int{0, 4} {
		h := newHarness(t)
		items := h.ctrl.store.Items()

		h.ctrl.SelectRow(index)

		require.Len(t, h.svc.playCalls, 1)
		call := h.svc.playCalls[0]
		assert.Equal(t, items, call.Items, "index %d", index)
		assert.True(t, call.Start.Equal(items[index]), "index %d", index)
		assert.Equal(t, []int{index}, h.surface.deselected)
		assert.Empty(t, h.surface.affordance, "selection must not touch the affordance")
		assert.Equal(t, []string{items[index].Source()}, h.mock.PlayCalls())
	}
}

func TestRowOrder_NotMutableFromOutside(t *testing.T) {
	h := newHarness(t)
	want := make([]string, h.ctrl.RowCount())
	for i := range want {
		want[i] = h.ctrl.RowContent(i).Item.Source()
	}

	row := h.ctrl.RowContent(0)
	row.Item = playlist.NewItem("/evil.mp3", "Injected", "", "", "")

	h.ctrl.SelectRow(2)
	require.Len(t, h.svc.playCalls, 1)
	handed := h.svc.playCalls[0].Items
	handed[0] = playlist.NewItem("/evil.mp3", "Injected", "", "", "")
	handed[1], handed[2] = handed[2], handed[1]

	for i := range want {
		assert.Equal(t, want[i], h.ctrl.RowContent(i).Item.Source(), "row %d", i)
	}
}

func TestSelectRow_PlayErrorIsAbsorbed(t *testing.T) {
	h := newHarness(t)
	h.mock.SetPlayError(errors.New("decode failed"))

	assert.NotPanics(t, func() { h.ctrl.SelectRow(1) })
	assert.Len(t, h.svc.playCalls, 1)
	assert.Equal(t, []int{1}, h.surface.deselected)
}

func TestSelectRow_OutOfRangePanics(t *testing.T) {
	for _, index := range []int{-1, 5} {
		h := newHarness(t)

		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "SelectRow(%d) should panic", index)
				err, ok := r.(*RowIndexError)
				require.True(t, ok, "panic value %T", r)
				assert.Equal(t, index, err.Index)
				assert.Equal(t, 5, err.Count)
			}()
			h.ctrl.SelectRow(index)
		}()

		assert.Empty(t, h.svc.playCalls)
		assert.Empty(t, h.surface.deselected)
		assert.Empty(t, h.surface.affordance)
		assert.Zero(t, h.surface.reloads)
		_, ok := h.svc.CurrentItem()
		assert.False(t, ok)
	}
}

func TestOnDestroy_ReleasesSubscription(t *testing.T) {
	h := newHarness(t)
	h.ctrl.OnCreate()
	sub := h.ctrl.Subscription()
	reloads := h.surface.reloads
	affordances := len(h.surface.affordance)

	h.ctrl.OnDestroy()

	assert.True(t, sub.Closed())
	assert.Zero(t, h.svc.liveSubs())
	assert.Equal(t, 1, h.svc.unsubs)
	assert.False(t, h.ctrl.Active())
	assert.Nil(t, h.ctrl.Watch())

	items := h.ctrl.store.Items()
	require.NoError(t, h.svc.Service.PlayItems(items, items[0]))
	assert.Empty(t, drainEvents(sub), "released subscription received events")

	assert.Nil(t, h.ctrl.Update(ChangedMsg{Sub: sub, Kind: KindTrackChanged}))
	assert.Nil(t, h.ctrl.Update(ChangedMsg{Sub: sub, Kind: KindStateChanged}))
	assert.Nil(t, h.ctrl.OnPlaybackOrTrackChanged())
	assert.Equal(t, reloads, h.surface.reloads)
	assert.Len(t, h.surface.affordance, affordances)

	h.ctrl.OnDestroy()
	assert.Equal(t, 1, h.svc.unsubs, "second OnDestroy should be a no-op")
}

func TestOnDestroy_WithoutEvents(t *testing.T) {
	h := newHarness(t)

	assert.NotPanics(t, h.ctrl.OnDestroy)
	assert.Zero(t, h.svc.liveSubs())
}

func TestUpdate_IgnoresForeignSubscription(t *testing.T) {
	h := newHarness(t)
	other := h.svc.Service.Subscribe()

	assert.Nil(t, h.ctrl.Update(ChangedMsg{Sub: other, Kind: KindTrackChanged}))
	assert.Nil(t, h.ctrl.Update(PlaybackErrorMsg{Sub: other}))
	assert.Nil(t, h.ctrl.Update(ChangedMsg{Kind: KindTrackChanged}))
	assert.Zero(t, h.surface.reloads)
}

func TestWatch_DeliversEvents(t *testing.T) {
	h := newHarness(t)
	items := h.ctrl.store.Items()
	require.NoError(t, h.svc.Service.PlayItems(items, items[0]))

	kinds := map[EventKind]bool{}
	for range 2 {
		msg := h.ctrl.Watch()()
		changed, ok := msg.(ChangedMsg)
		require.True(t, ok, "Watch() returned %T", msg)
		assert.Same(t, h.ctrl.Subscription(), changed.Sub)
		kinds[changed.Kind] = true
	}
	assert.True(t, kinds[KindTrackChanged])
	assert.True(t, kinds[KindStateChanged])
}

func TestWatch_ErrorEvent(t *testing.T) {
	h := newHarness(t)
	h.mock.SetPlayError(errors.New("boom"))
	items := h.ctrl.store.Items()
	_ = h.svc.Service.PlayItems(items, items[0])

	var got PlaybackErrorMsg
	for range 2 {
		if msg, ok := h.ctrl.Watch()().(PlaybackErrorMsg); ok {
			got = msg
			break
		}
	}
	require.NotNil(t, got.Event.Err)
	assert.Equal(t, items[0].Source(), got.Event.Path)
	assert.NotNil(t, h.ctrl.Update(got), "error should re-arm the watch")
}

func TestWatch_ReturnsNilWhenReleased(t *testing.T) {
	h := newHarness(t)
	cmd := h.ctrl.Watch()
	h.ctrl.OnDestroy()

	assert.Nil(t, cmd())
}

func TestShowDetail_SharesPlayerAndNotifier(t *testing.T) {
	h := newHarness(t)

	h.ctrl.ShowDetail()

	require.Len(t, h.details, 1)
	d := h.details[0]
	assert.Same(t, h.svc, d.player)
	assert.Same(t, h.svc, d.notifier)
	require.Len(t, h.surface.presented, 1)
	assert.Same(t, d, h.surface.presented[0])

	h.ctrl.DismissDetail()
	assert.Equal(t, 1, d.closed)
	assert.Equal(t, 1, h.surface.dismissed)
	assert.Nil(t, h.ctrl.Detail())
}

func TestShowDetail_ClosedOnDestroy(t *testing.T) {
	h := newHarness(t)
	h.ctrl.ShowDetail()
	d := h.details[0]

	h.ctrl.OnDestroy()

	assert.Equal(t, 1, d.closed)
	assert.Nil(t, h.ctrl.ShowDetail())
	assert.Len(t, h.details, 1)
}

func TestShowDetail_DefaultIsNowPlaying(t *testing.T) {
	svc := &recordingService{Service: playback.New(player.NewMock(), nil)}
	t.Cleanup(func() { _ = svc.Close() })
	m := playlist.DefaultManifest()
	surface := &fakeSurface{}
	ctrl, err := New(Dependencies{
		Player:   svc,
		Manifest: m,
		Resolver: playlist.NewFSResolver(testMedia(m), "/media"),
		Surface:  surface,
	}, Options{})
	require.NoError(t, err)

	ctrl.ShowDetail()

	require.Len(t, surface.presented, 1)
	assert.IsType(t, &nowplaying.Model{}, surface.presented[0])
	assert.Equal(t, 2, svc.liveSubs(), "detail should hold its own subscription")

	ctrl.DismissDetail()
	assert.Equal(t, 1, svc.liveSubs())
}

// End to end: five items, nothing playing, then item #3 becomes current
// and row 1 is selected.
func TestScenario_FiveItems(t *testing.T) {
	h := newHarness(t)
	items := h.ctrl.store.Items()

	h.ctrl.OnCreate()
	assert.Equal(t, 5, h.ctrl.RowCount())
	assert.False(t, h.surface.lastAffordance().Affordance.Visible())
	reloads := h.surface.reloads

	require.NoError(t, h.svc.Service.PlayItems(items, items[2]))
	sub := h.ctrl.Subscription()
	select {
	case <-sub.TrackChanged:
	default:
		t.Fatal("expected a track change event")
	}
	h.ctrl.Update(ChangedMsg{Sub: sub, Kind: KindTrackChanged})

	assert.True(t, h.surface.lastAffordance().Affordance.Visible())
	assert.Equal(t, reloads+1, h.surface.reloads, "exactly one refresh per event")

	h.ctrl.SelectRow(1)
	require.Len(t, h.svc.playCalls, 1)
	assert.Equal(t, items, h.svc.playCalls[0].Items)
	assert.True(t, h.svc.playCalls[0].Start.Equal(items[1]))
	for i, it := range h.svc.playCalls[0].Items {
		assert.True(t, it.Equal(h.ctrl.store.At(i)), "order changed at %d", i)
	}
}

func snapshotRows(c *Controller) []string {
	out := make([]string, c.RowCount())
	for i := range out {
		r := c.RowContent(i)
		out[i] = r.Item.Source() + "|" + r.State().String()
	}
	return out
}
