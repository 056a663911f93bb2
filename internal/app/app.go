// Package app is the root bubbletea model of wavelist. It hosts the
// playlist panel and its controller, the status line, and help.
package app

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/wavelist/internal/history"
	"github.com/llehouerou/wavelist/internal/keymap"
	"github.com/llehouerou/wavelist/internal/notify"
	"github.com/llehouerou/wavelist/internal/playback"
	"github.com/llehouerou/wavelist/internal/playlist"
	"github.com/llehouerou/wavelist/internal/playlistview"
	"github.com/llehouerou/wavelist/internal/stderr"
	"github.com/llehouerou/wavelist/internal/ui/playlistpanel"
)

const (
	tickInterval = time.Second
	seekStep     = 5 * time.Second
	statusHeight = 1
)

// Deps are the collaborators the application is built from.
type Deps struct {
	Player      playback.Service
	Manifest    playlist.Manifest
	Resolver    playlist.Resolver
	LoadOptions []playlist.Option

	// History is optional.
	History *history.Manager
	// Notifications is optional.
	Notifications notify.Sender
	// Stderr carries captured stderr lines; nil disables the listener.
	Stderr <-chan string

	AffordanceHeight  int
	AnimationDuration time.Duration

	Logger *log.Logger
}

// Model is the root application model.
type Model struct {
	Player     playback.Service
	Panel      *playlistpanel.Model
	Controller *playlistview.Controller
	History    *history.Manager

	keys     *keymap.Resolver
	help     help.Model
	showHelp bool
	status   string

	stderr      <-chan string
	stopHistory func()
	stopNotify  func()
	logger      *log.Logger

	Width  int
	Height int
}

// New builds the playlist screen. A missing media resource fails with
// *playlist.MissingResourceError and nothing is left subscribed.
func New(ctx context.Context, deps Deps) (Model, error) {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	panel := playlistpanel.New(deps.Player)
	ctrlDeps := playlistview.Dependencies{
		Player:      deps.Player,
		Manifest:    deps.Manifest,
		Resolver:    deps.Resolver,
		LoadOptions: deps.LoadOptions,
		Surface:     panel,
		Logger:      logger.With("component", "playlist"),
	}
	if deps.History != nil {
		ctrlDeps.Plays = deps.History
	}
	ctrl, err := playlistview.New(ctrlDeps, playlistview.Options{
		AffordanceHeight:  deps.AffordanceHeight,
		AnimationDuration: deps.AnimationDuration,
	})
	if err != nil {
		return Model{}, err
	}

	m := Model{
		Player:      deps.Player,
		Panel:       panel,
		Controller:  ctrl,
		History:     deps.History,
		keys:        keymap.NewResolver(keymap.ContextGlobal, keymap.ContextPlaylist, keymap.ContextPlayback),
		help:        help.New(),
		stderr:      deps.Stderr,
		stopHistory: func() {},
		stopNotify:  func() {},
		logger:      logger,
	}
	if deps.History != nil {
		m.stopHistory = deps.History.Follow(ctx, deps.Player)
	}
	if deps.Notifications != nil {
		m.stopNotify = notify.Follow(ctx, deps.Player, deps.Notifications, logger.With("component", "notify"))
	}
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.Controller.OnCreate(),
		stderr.Listen(m.stderr),
		tick(),
	)
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// HelpVisible reports whether the full help is shown.
func (m Model) HelpVisible() bool {
	return m.showHelp
}

// Shutdown tears the screen down and stops the background subscribers.
// It is called on quit and is safe to call again.
func (m Model) Shutdown() {
	m.Controller.OnDestroy()
	m.stopHistory()
	m.stopNotify()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
