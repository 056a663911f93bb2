package history

import (
	"context"
	"sync"
	"time"

	"github.com/llehouerou/wavelist/internal/errmsg"
	"github.com/llehouerou/wavelist/internal/playback"
)

// Follow records every track start announced by n until ctx is done or
// the returned stop function is called. It holds its own subscription,
// independent of any screen.
func (m *Manager) Follow(ctx context.Context, n playback.Notifier) (stop func()) {
	sub := n.Subscribe()
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer n.Unsubscribe(sub)
		for {
			select {
			case e := <-sub.TrackChanged:
				if e.Current.IsZero() {
					continue
				}
				if err := m.Record(e.Current.Source(), time.Now()); err != nil {
					m.logger.Error(errmsg.FormatWith(errmsg.OpHistoryRecord, e.Current.Source(), err))
				}
			case <-sub.StateChanged:
			case <-sub.Error:
			case <-sub.Done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
}
