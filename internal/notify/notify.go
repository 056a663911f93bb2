// Package notify announces track changes as desktop notifications.
package notify

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/wavelist/internal/playback"
	"github.com/llehouerou/wavelist/internal/playlist"
)

// Urgency is the freedesktop notification priority.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

const trackTimeout = 4000 // ms

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string // image path or icon name
	Timeout    int32  // ms, -1 = server default, 0 = never expire
	ReplacesID uint32 // 0 = new notification
	Urgency    Urgency
}

// Sender delivers notifications.
type Sender interface {
	// Notify shows n and returns its id, 0 when notifications are
	// unavailable.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// coverNames are looked up next to a track when its artwork is not found.
var coverNames = []string{
	"cover.jpg", "cover.png",
	"folder.jpg", "folder.png",
	"front.jpg", "front.png",
}

var artworkExts = []string{".jpg", ".png", ".jpeg"}

// FindArtwork returns an image for item from the directory of its media
// file: the item's artwork name first, then common cover names.
func FindArtwork(item playlist.Item) string {
	dir := filepath.Dir(item.Source())
	var candidates []string
	if art := item.Artwork(); art != "" {
		if filepath.Ext(art) != "" {
			candidates = append(candidates, art)
		}
		for _, ext := range artworkExts {
			candidates = append(candidates, art+ext)
		}
	}
	candidates = append(candidates, coverNames...)

	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// TrackNotification describes item as a "now playing" notification.
func TrackNotification(item playlist.Item) Notification {
	return Notification{
		Title:   item.Track(),
		Body:    item.Subtitle(),
		Icon:    FindArtwork(item),
		Timeout: trackTimeout,
		Urgency: UrgencyLow,
	}
}

// Follow shows a notification for each track start announced by n,
// replacing the previous one, until ctx is done or stop is called. It
// holds its own subscription.
func Follow(ctx context.Context, n playback.Notifier, s Sender, logger *log.Logger) (stop func()) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sub := n.Subscribe()
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer n.Unsubscribe(sub)
		var last uint32
		for {
			select {
			case e := <-sub.TrackChanged:
				if e.Current.IsZero() {
					continue
				}
				notif := TrackNotification(e.Current)
				notif.ReplacesID = last
				id, err := s.Notify(notif)
				if err != nil {
					logger.Warn("notify", "source", e.Current.Source(), "err", err)
					continue
				}
				last = id
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
