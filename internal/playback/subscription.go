package playback

import "sync"

const eventBufferSize = 16

// Subscription is one observer's registration with a Notifier. It holds
// exactly one registration per event kind and is released with
// Notifier.Unsubscribe.
type Subscription struct {
	TrackChanged <-chan TrackChange
	StateChanged <-chan StateChange
	Error        <-chan ErrorEvent
	// Done is closed when the subscription is released or the notifier
	// shuts down.
	Done <-chan struct{}

	trackCh chan TrackChange
	stateCh chan StateChange
	errorCh chan ErrorEvent
	doneCh  chan struct{}

	mu     sync.Mutex
	closed bool
}

func newSubscription() *Subscription {
	s := &Subscription{
		trackCh: make(chan TrackChange, eventBufferSize),
		stateCh: make(chan StateChange, eventBufferSize),
		errorCh: make(chan ErrorEvent, eventBufferSize),
		doneCh:  make(chan struct{}),
	}
	s.TrackChanged = s.trackCh
	s.StateChanged = s.stateCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// Closed reports whether the subscription has been released.
func (s *Subscription) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// close releases the subscription and discards undelivered events.
// Safe to call more than once.
func (s *Subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.doneCh)
	drain(s.trackCh)
	drain(s.stateCh)
	drain(s.errorCh)
}

func drain[T any](ch chan T) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// send delivers e without blocking; events are dropped when the buffer is
// full or the subscription is closed.
func send[T any](s *Subscription, ch chan T, e T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case ch <- e:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) sendTrack(e TrackChange) { send(s, s.trackCh, e) }

func (s *Subscription) sendState(e StateChange) { send(s, s.stateCh, e) }

func (s *Subscription) sendError(e ErrorEvent) { send(s, s.errorCh, e) }
