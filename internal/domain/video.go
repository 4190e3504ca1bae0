package domain

import "time"

// PlaceholderTitle is the provisional title given to a ledger entry until
// the asynchronous oEmbed backfill replaces it. A failed backfill leaves it
// in place permanently.
const PlaceholderTitle = "Loading..."

// HistoryEntry is one watched video in the history ledger.
//
// The ledger is ordered most-recently-watched first and holds at most one
// entry per video id; re-watching moves the entry back to the head.
type HistoryEntry struct {
	// ID is the opaque video identifier (YouTube's 11-character id in
	// practice, but nothing here assumes a fixed length).
	ID string `json:"id"`

	// Title starts as PlaceholderTitle and is backfilled asynchronously.
	Title string `json:"title"`

	// WatchedAt is refreshed every time the video becomes active.
	WatchedAt time.Time `json:"watched_at"`
}

// FavoriteEntry is one starred video in the favorites ledger.
// Same dedup-by-id, head-insertion semantics as HistoryEntry; insertion is
// an explicit user action, promotion happens when a favorite is replayed.
type FavoriteEntry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	FavoritedAt time.Time `json:"favorited_at"`
}

// WatchURL returns the canonical watch page URL for a video id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// EmbedURL returns the embeddable player URL for a video id.
func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

// ThumbnailURL returns the default thumbnail image URL for a video id.
func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}
