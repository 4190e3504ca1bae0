package domain

import "time"

const (
	// MinLookbackDays and MaxLookbackDays bound the per-channel trailing
	// window used when fetching recent uploads.
	MinLookbackDays = 1
	MaxLookbackDays = 30

	// DefaultLookbackDays is applied to newly subscribed channels.
	DefaultLookbackDays = 7
)

// Channel is a subscribed YouTube channel.
type Channel struct {
	// ID is the YouTube channel id (UC...). Unique across the store.
	ID string `json:"id"`

	// Name is the channel's display title.
	Name string `json:"name"`

	// Handle is the @handle form when known.
	Handle string `json:"handle,omitempty"`

	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	SubscriberCount string `json:"subscriber_count,omitempty"`
	Description     string `json:"description,omitempty"`

	// LookbackDays is the trailing window, in days, for video fetches.
	// Always within [MinLookbackDays, MaxLookbackDays].
	LookbackDays int `json:"lookback_days"`

	// IsActive gates periodic refreshes; inactive channels keep their
	// stored videos but are skipped by the refresher.
	IsActive bool `json:"is_active"`

	DateAdded   time.Time `json:"date_added"`
	LastUpdated time.Time `json:"last_updated"`
}

// ClampLookback forces days into the allowed window.
func ClampLookback(days int) int {
	if days < MinLookbackDays {
		return MinLookbackDays
	}
	if days > MaxLookbackDays {
		return MaxLookbackDays
	}
	return days
}

// ChannelVideo is one upload fetched from a subscribed channel's feed.
// The id is the globally unique YouTube video id.
type ChannelVideo struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	ChannelID    string     `json:"channel_id"`
	ChannelName  string     `json:"channel_name"`
	PublishedAt  time.Time  `json:"published_at"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	Duration     string     `json:"duration,omitempty"`
	ViewCount    string     `json:"view_count,omitempty"`
	IsWatched    bool       `json:"is_watched"`
	WatchedAt    *time.Time `json:"watched_at,omitempty"`
}
