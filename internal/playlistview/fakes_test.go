package playlistview

import (
	"testing"
	"testing/fstest"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavelist/internal/playback"
	"github.com/llehouerou/wavelist/internal/player"
	"github.com/llehouerou/wavelist/internal/playlist"
)

type affordanceCall struct {
	Affordance Affordance
	Transition Transition
}

type fakeSurface struct {
	reloads    int
	rows       RowSource
	affordance []affordanceCall
	deselected []int
	presented  []Detail
	dismissed  int

	onReload func()
}

func (s *fakeSurface) ReloadRows(rows RowSource) {
	s.reloads++
	s.rows = rows
	if s.onReload != nil {
		s.onReload()
	}
}

func (s *fakeSurface) DeselectRow(index int) {
	s.deselected = append(s.deselected, index)
}

func (s *fakeSurface) SetAffordance(a Affordance, t Transition) tea.Cmd {
	s.affordance = append(s.affordance, affordanceCall{Affordance: a, Transition: t})
	return nil
}

func (s *fakeSurface) PresentDetail(d Detail) tea.Cmd {
	s.presented = append(s.presented, d)
	return nil
}

func (s *fakeSurface) DismissDetail() {
	s.dismissed++
}

func (s *fakeSurface) lastAffordance() affordanceCall {
	if len(s.affordance) == 0 {
		return affordanceCall{}
	}
	return s.affordance[len(s.affordance)-1]
}

type playCall struct {
	Items []playlist.Item
	Start playlist.Item
}

// recordingService wraps a real service over a mock player and records
// the calls the controller makes.
type recordingService struct {
	playback.Service

	playCalls []playCall
	subs      []*playback.Subscription
	unsubs    int
}

func (s *recordingService) PlayItems(items []playlist.Item, start playlist.Item) error {
	s.playCalls = append(s.playCalls, playCall{Items: items, Start: start})
	return s.Service.PlayItems(items, start)
}

func (s *recordingService) Subscribe() *playback.Subscription {
	sub := s.Service.Subscribe()
	s.subs = append(s.subs, sub)
	return sub
}

func (s *recordingService) Unsubscribe(sub *playback.Subscription) {
	s.unsubs++
	s.Service.Unsubscribe(sub)
}

func (s *recordingService) liveSubs() int {
	n := 0
	for _, sub := range s.subs {
		if !sub.Closed() {
			n++
		}
	}
	return n
}

type fakeDetail struct {
	player   playback.Service
	notifier playback.Notifier
	closed   int
}

func (d *fakeDetail) Init() tea.Cmd             { return nil }
func (d *fakeDetail) Update(tea.Msg) tea.Cmd    { return nil }
func (d *fakeDetail) View() string              { return "detail" }
func (d *fakeDetail) SetSize(width, height int) {}
func (d *fakeDetail) Close()                    { d.closed++ }

func testMedia(m playlist.Manifest) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, e := range m.Tracks {
		fsys[e.Resource+"."+e.Ext] = &fstest.MapFile{Data: []byte("audio")}
	}
	return fsys
}

type harness struct {
	ctrl    *Controller
	svc     *recordingService
	mock    *player.Mock
	surface *fakeSurface
	details []*fakeDetail
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mock := player.NewMock()
	svc := &recordingService{Service: playback.New(mock, nil)}
	t.Cleanup(func() { _ = svc.Close() })

	h := &harness{svc: svc, mock: mock, surface: &fakeSurface{}}
	m := playlist.DefaultManifest()
	ctrl, err := New(Dependencies{
		Player:   svc,
		Manifest: m,
		Resolver: playlist.NewFSResolver(testMedia(m), "/media"),
		Surface:  h.surface,
		NewDetail: func(p playback.Service, n playback.Notifier) Detail {
			d := &fakeDetail{player: p, notifier: n}
			h.details = append(h.details, d)
			return d
		},
	}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.ctrl = ctrl
	return h
}

// drainEvents reads every pending event of sub as controller messages.
func drainEvents(sub *playback.Subscription) []tea.Msg {
	var msgs []tea.Msg
	for {
		select {
		case <-sub.TrackChanged:
			msgs = append(msgs, ChangedMsg{Sub: sub, Kind: KindTrackChanged})
		case <-sub.StateChanged:
			msgs = append(msgs, ChangedMsg{Sub: sub, Kind: KindStateChanged})
		default:
			return msgs
		}
	}
}

// runCmd executes cmd and flattens batches. It must not be given a
// command that blocks, such as Watch.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
