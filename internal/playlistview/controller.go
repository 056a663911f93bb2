package playlistview

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/wavelist/internal/playback"
	"github.com/llehouerou/wavelist/internal/playlist"
	"github.com/llehouerou/wavelist/internal/ui/nowplaying"
)

type phase int

const (
	phaseConstructing phase = iota
	phaseActive
	phaseTornDown
)

func (p phase) String() string {
	switch p {
	case phaseConstructing:
		return "constructing"
	case phaseActive:
		return "active"
	case phaseTornDown:
		return "torn down"
	default:
		return "unknown"
	}
}

// DetailFactory builds the detail screen opened by ShowDetail.
type DetailFactory func(player playback.Service, notifier playback.Notifier) Detail

// Dependencies are the collaborators of a Controller.
type Dependencies struct {
	Player playback.Service
	// Notifier defaults to Player.
	Notifier playback.Notifier

	Manifest    playlist.Manifest
	Resolver    playlist.Resolver
	LoadOptions []playlist.Option

	Surface Surface
	// Plays is optional; rows report zero stats without it.
	Plays PlayCounter
	// NewDetail defaults to the now playing screen.
	NewDetail DetailFactory
	Logger    *log.Logger
}

// Options tune the affordance.
type Options struct {
	AffordanceHeight  int
	AnimationDuration time.Duration
}

func (o Options) withDefaults() Options {
	if o.AffordanceHeight <= 0 {
		o.AffordanceHeight = DefaultAffordanceHeight
	}
	if o.AnimationDuration <= 0 {
		o.AnimationDuration = DefaultAnimationDuration
	}
	return o
}

// Controller reconciles the playlist screen with the playback service.
type Controller struct {
	player    playback.Service
	notifier  playback.Notifier
	store     *playlist.Store
	surface   Surface
	plays     PlayCounter
	newDetail DetailFactory
	logger    *log.Logger
	opts      Options

	sub    *playback.Subscription
	phase  phase
	detail Detail

	reconciling bool
	pending     bool
}

// New builds the playlist store and subscribes to playback events.
// A missing media resource is reported as *playlist.MissingResourceError.
func New(deps Dependencies, opts Options) (*Controller, error) {
	if deps.Player == nil {
		return nil, ErrNoPlayer
	}
	if deps.Surface == nil {
		return nil, ErrNoSurface
	}

	store, err := playlist.Load(deps.Manifest, deps.Resolver, deps.LoadOptions...)
	if err != nil {
		return nil, fmt.Errorf("build playlist: %w", err)
	}

	c := &Controller{
		player:    deps.Player,
		notifier:  deps.Notifier,
		store:     store,
		surface:   deps.Surface,
		plays:     deps.Plays,
		newDetail: deps.NewDetail,
		logger:    deps.Logger,
		opts:      opts.withDefaults(),
		phase:     phaseConstructing,
	}
	if c.notifier == nil {
		c.notifier = deps.Player
	}
	if c.newDetail == nil {
		c.newDetail = newNowPlaying
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}

	c.subscribe()
	c.phase = phaseActive
	c.logger.Debug("playlist controller ready", "items", store.Len())
	return c, nil
}

func newNowPlaying(player playback.Service, notifier playback.Notifier) Detail {
	return nowplaying.New(player, notifier)
}

func (c *Controller) subscribe() {
	if c.sub != nil {
		panic("playlistview: subscribe called twice")
	}
	c.sub = c.notifier.Subscribe()
}

func (c *Controller) unsubscribe() {
	if c.sub == nil {
		return
	}
	c.notifier.Unsubscribe(c.sub)
	c.sub = nil
}

// Subscription returns the live subscription, or nil once torn down.
func (c *Controller) Subscription() *playback.Subscription {
	return c.sub
}

// Active reports whether the controller still reacts to events.
func (c *Controller) Active() bool {
	return c.phase == phaseActive
}

// OnCreate performs the first, non-animated, affordance sync and starts
// watching playback events.
func (c *Controller) OnCreate() tea.Cmd {
	if c.phase != phaseActive {
		return nil
	}
	cmd := c.surface.SetAffordance(c.targetAffordance(), Immediate())
	c.surface.ReloadRows(c)
	return tea.Batch(cmd, c.Watch())
}

// OnDestroy releases the subscription, then closes any presented detail.
// Later events and handler calls have no effect.
func (c *Controller) OnDestroy() {
	if c.phase == phaseTornDown {
		return
	}
	c.phase = phaseTornDown
	c.unsubscribe()
	c.pending = false
	if c.detail != nil {
		c.detail.Close()
		c.detail = nil
	}
	c.logger.Debug("playlist controller torn down")
}

// OnPlaybackOrTrackChanged recomputes the affordance from live player
// state and reloads every row. A call made while a pass is running is
// deferred to the next update loop turn through the returned command.
func (c *Controller) OnPlaybackOrTrackChanged() tea.Cmd {
	if c.phase != phaseActive {
		return nil
	}
	if c.reconciling {
		c.pending = true
		return nil
	}

	c.reconciling = true
	cmd := c.surface.SetAffordance(c.targetAffordance(), Animated(c.opts.AnimationDuration))
	c.surface.ReloadRows(c)
	c.reconciling = false

	if c.pending && c.phase == phaseActive {
		c.pending = false
		return tea.Batch(cmd, c.requeue())
	}
	return cmd
}

func (c *Controller) requeue() tea.Cmd {
	sub := c.sub
	return func() tea.Msg {
		return ChangedMsg{Sub: sub, Kind: KindRequeued}
	}
}

// AffordanceVisible reports whether the player has a current item.
func (c *Controller) AffordanceVisible() bool {
	_, ok := c.player.CurrentItem()
	return ok
}

func (c *Controller) targetAffordance() Affordance {
	return AffordanceFor(c.AffordanceVisible(), c.opts.AffordanceHeight)
}

// RowCount returns the number of playlist rows.
func (c *Controller) RowCount() int {
	return c.store.Len()
}

// RowContent returns the row for index, bound to the shared player.
func (c *Controller) RowContent(index int) Row {
	return Row{
		Index:  index,
		Item:   c.store.At(index),
		player: c.player,
		plays:  c.plays,
	}
}

// SelectRow plays the whole playlist starting at index, then clears the
// row highlight. It panics with *RowIndexError if index is out of range.
func (c *Controller) SelectRow(index int) {
	if n := c.store.Len(); index < 0 || index >= n {
		panic(&RowIndexError{Index: index, Count: n})
	}
	item := c.store.At(index)
	if err := c.player.PlayItems(c.store.Items(), item); err != nil {
		c.logger.Error("play items", "index", index, "source", item.Source(), "err", err)
	}
	c.surface.DeselectRow(index)
}

// ShowDetail presents the player screen on the same player and notifier.
func (c *Controller) ShowDetail() tea.Cmd {
	if c.phase != phaseActive {
		return nil
	}
	if c.detail != nil {
		c.surface.DismissDetail()
		c.detail.Close()
	}
	c.detail = c.newDetail(c.player, c.notifier)
	return c.surface.PresentDetail(c.detail)
}

// DismissDetail removes the player screen and releases its subscription.
func (c *Controller) DismissDetail() {
	if c.detail == nil {
		return
	}
	c.surface.DismissDetail()
	c.detail.Close()
	c.detail = nil
}

// Detail returns the presented detail, or nil.
func (c *Controller) Detail() Detail {
	return c.detail
}

// Watch waits for the next event on the controller's subscription.
// Only one Watch should be outstanding at a time; Update re-arms it.
func (c *Controller) Watch() tea.Cmd {
	sub := c.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-sub.TrackChanged:
			return ChangedMsg{Sub: sub, Kind: KindTrackChanged}
		case <-sub.StateChanged:
			return ChangedMsg{Sub: sub, Kind: KindStateChanged}
		case e := <-sub.Error:
			return PlaybackErrorMsg{Sub: sub, Event: e}
		case <-sub.Done:
			return nil
		}
	}
}

// Update handles messages produced by Watch. Messages from another
// subscription, or arriving after teardown, are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ChangedMsg:
		if msg.Sub == nil || msg.Sub != c.sub {
			return nil
		}
		cmd := c.OnPlaybackOrTrackChanged()
		if msg.Kind == KindRequeued {
			return cmd
		}
		return tea.Batch(cmd, c.Watch())
	case PlaybackErrorMsg:
		if msg.Sub == nil || msg.Sub != c.sub {
			return nil
		}
		c.logger.Warn("playback error", "op", msg.Event.Operation, "path", msg.Event.Path, "err", msg.Event.Err)
		return c.Watch()
	}
	return nil
}
