package playback

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/wavelist/internal/player"
	"github.com/llehouerou/wavelist/internal/playlist"
)

var (
	// ErrClosed is returned by commands issued after Close.
	ErrClosed = errors.New("playback service closed")

	// ErrStartNotInItems is returned by PlayItems when start is not one of items.
	ErrStartNotInItems = errors.New("start item not in items")
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.RWMutex

	player player.Interface
	queue  *queue
	logger *log.Logger

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
	wg     sync.WaitGroup
}

// New creates a playback service driving p. It watches p for finished
// tracks until Close.
func New(p player.Interface, logger *log.Logger) Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &serviceImpl{
		player: p,
		queue:  newQueue(),
		logger: logger.With("component", "playback"),
		done:   make(chan struct{}),
	}
	s.wg.Add(1)
	go s.watchFinished()
	return s
}

// --- Notifier ---

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	sub := newSubscription()

	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		sub.close()
		return sub
	}

	s.subsMu.Lock()
	s.subs = append(s.subs, sub)
	s.subsMu.Unlock()
	return sub
}

// Unsubscribe removes sub and closes it.
func (s *serviceImpl) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	s.subsMu.Lock()
	s.subs = slices.DeleteFunc(s.subs, func(x *Subscription) bool { return x == sub })
	s.subsMu.Unlock()
	sub.close()
}

func (s *serviceImpl) broadcast(fn func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		fn(sub)
	}
}

func (s *serviceImpl) emitTrack(e TrackChange) {
	s.broadcast(func(sub *Subscription) { sub.sendTrack(e) })
}

func (s *serviceImpl) emitState(e StateChange) {
	s.broadcast(func(sub *Subscription) { sub.sendState(e) })
}

func (s *serviceImpl) emitError(e ErrorEvent) {
	s.broadcast(func(sub *Subscription) { sub.sendError(e) })
}

// --- State queries ---

// State returns the current playback state.
func (s *serviceImpl) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stateOf(s.player.State())
}

func stateOf(ps player.State) State {
	switch ps {
	case player.Playing:
		return StatePlaying
	case player.Paused:
		return StatePaused
	case player.Stopped:
		return StateStopped
	default:
		return StateStopped
	}
}

// IsPlaying returns true if currently playing.
func (s *serviceImpl) IsPlaying() bool {
	return s.State() == StatePlaying
}

// CurrentItem returns the current item, if any.
func (s *serviceImpl) CurrentItem() (playlist.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.current()
}

// CurrentIndex returns the queue index of the current item (-1 if none).
func (s *serviceImpl) CurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.currentIndex
}

// Items returns a copy of the queue.
func (s *serviceImpl) Items() []playlist.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.snapshot()
}

// Position returns the current playback position.
func (s *serviceImpl) Position() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Position()
}

// Duration returns the current track duration.
func (s *serviceImpl) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Duration()
}

// --- Commands ---

// PlayItems replaces the queue with items and starts playing start.
func (s *serviceImpl) PlayItems(items []playlist.Item, start playlist.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	prev, prevIdx, prevState := s.snapshotLocked()
	if !s.queue.replace(items, start) {
		return fmt.Errorf("play %s: %w", start.Source(), ErrStartNotInItems)
	}
	err := s.playCurrentLocked()
	s.emitChangesLocked(prev, prevIdx, prevState)
	return err
}

// Toggle toggles between play and pause. With no current item it is a no-op.
func (s *serviceImpl) Toggle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	prev, prevIdx, prevState := s.snapshotLocked()
	if prevState == StateStopped {
		if _, ok := s.queue.current(); !ok {
			return nil
		}
		if err := s.playCurrentLocked(); err != nil {
			s.emitChangesLocked(prev, prevIdx, prevState)
			return err
		}
	} else {
		s.player.Toggle()
	}
	s.emitChangesLocked(prev, prevIdx, prevState)
	return nil
}

// Stop stops playback and clears the current item.
func (s *serviceImpl) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	prev, prevIdx, prevState := s.snapshotLocked()
	s.player.Stop()
	s.queue.reset()
	s.emitChangesLocked(prev, prevIdx, prevState)
	return nil
}

// Next plays the next item. At the end of the queue it is a no-op.
func (s *serviceImpl) Next() error {
	return s.step((*queue).next)
}

// Previous plays the previous item. At the start of the queue it restarts
// the current item.
func (s *serviceImpl) Previous() error {
	return s.step(func(q *queue) bool {
		q.previous()
		_, ok := q.current()
		return ok
	})
}

func (s *serviceImpl) step(move func(*queue) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	prev, prevIdx, prevState := s.snapshotLocked()
	if !move(s.queue) {
		return nil
	}
	err := s.playCurrentLocked()
	s.emitChangesLocked(prev, prevIdx, prevState)
	return err
}

// Seek moves the playback position by delta.
func (s *serviceImpl) Seek(delta time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.player.Seek(delta)
	return nil
}

// Close stops playback, releases every subscription and stops the
// finished-track watcher.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.player.Stop()
	s.mu.Unlock()

	s.wg.Wait()

	s.subsMu.Lock()
	subs := s.subs
	s.subs = nil
	s.subsMu.Unlock()
	for _, sub := range subs {
		sub.close()
	}
	return nil
}

// --- internals ---

func (s *serviceImpl) snapshotLocked() (playlist.Item, int, State) {
	item, _ := s.queue.current()
	return item, s.queue.currentIndex, stateOf(s.player.State())
}

// playCurrentLocked starts the current queue item. Failures are reported
// to subscribers as ErrorEvent and returned.
func (s *serviceImpl) playCurrentLocked() error {
	item, ok := s.queue.current()
	if !ok {
		return nil
	}
	if err := s.player.Play(item.Source()); err != nil {
		s.logger.Error("play failed", "source", item.Source(), "err", err)
		s.emitError(ErrorEvent{Operation: "play", Path: item.Source(), Err: err})
		return fmt.Errorf("play %s: %w", item.Source(), err)
	}
	s.logger.Debug("playing", "source", item.Source(), "index", s.queue.currentIndex)
	return nil
}

// emitChangesLocked publishes TrackChange and StateChange for whatever
// differs from the given snapshot. Track changes go first.
func (s *serviceImpl) emitChangesLocked(prev playlist.Item, prevIdx int, prevState State) {
	cur, curIdx, curState := s.snapshotLocked()
	if curIdx != prevIdx || !cur.Equal(prev) {
		s.emitTrack(TrackChange{
			Previous:      prev,
			Current:       cur,
			PreviousIndex: prevIdx,
			Index:         curIdx,
		})
	}
	if curState != prevState {
		s.emitState(StateChange{Previous: prevState, Current: curState})
	}
}

func (s *serviceImpl) watchFinished() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case <-s.player.FinishedChan():
			s.handleTrackFinished()
		}
	}
}

// handleTrackFinished advances to the next item, or clears the current
// item at the end of the queue.
func (s *serviceImpl) handleTrackFinished() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	prev, prevIdx, prevState := s.snapshotLocked()
	if s.queue.next() {
		_ = s.playCurrentLocked()
	} else {
		s.player.Stop()
		s.queue.reset()
	}
	s.emitChangesLocked(prev, prevIdx, prevState)
}
