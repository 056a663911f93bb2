// Package playlistview is the playlist screen controller.
//
// The controller keeps the playlist rows and the "now playing" affordance
// in sync with the playback service. It holds one subscription for its
// whole lifetime: taken at the end of New, released first thing in
// OnDestroy. Every track or state event triggers the same reconciliation:
// recompute the affordance from live player state, then ask the surface
// to re-pull all rows.
//
// All methods must be called from the bubbletea update loop. Events reach
// the controller as ChangedMsg values produced by Watch, so the handler
// never runs concurrently with itself or with any other method.
package playlistview
