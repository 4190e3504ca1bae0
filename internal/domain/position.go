package domain

import (
	"fmt"
	"math"
	"time"
)

// PartialWatchThreshold is the margin, at both ends of a video, inside which
// a saved position does not count as "partially watched". 30 seconds matches
// the resume heuristic users expect: a few seconds in is noise, a few seconds
// from the end is finished.
const PartialWatchThreshold = 30.0

// PlaybackPosition is the durable bookmark of where playback left off for
// one video. At most one record exists per video id; saves overwrite in
// place (last write wins, no merge).
type PlaybackPosition struct {
	// VideoID names the video this bookmark belongs to.
	VideoID string `json:"video_id"`

	// Position is the playback offset in seconds. Always >= 0.
	Position float64 `json:"position"`

	// Duration is the total length in seconds. 0 means the player has not
	// reported it yet.
	Duration float64 `json:"duration"`

	// LastUpdated drives age-based pruning.
	LastUpdated time.Time `json:"last_updated"`
}

// IsPartiallyWatched reports whether the position sits meaningfully inside
// the video: past the opening threshold and not within the closing one.
func (p PlaybackPosition) IsPartiallyWatched() bool {
	return p.Position > PartialWatchThreshold && p.Position < p.Duration-PartialWatchThreshold
}

// WatchProgress returns position/duration clamped to [0, 1], or 0 while the
// duration is unknown.
func (p PlaybackPosition) WatchProgress() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return math.Min(p.Position/p.Duration, 1.0)
}

// FormattedPosition renders the offset as M:SS or H:MM:SS.
func (p PlaybackPosition) FormattedPosition() string {
	return FormatSeconds(p.Position)
}

// FormattedDuration renders the total length as M:SS or H:MM:SS.
func (p PlaybackPosition) FormattedDuration() string {
	return FormatSeconds(p.Duration)
}

// ValidOffsets reports whether a position/duration pair is storable: both
// finite and non-negative. An unready player reporting NaN or a negative
// offset must never corrupt a record.
func ValidOffsets(position, duration float64) bool {
	if math.IsNaN(position) || math.IsInf(position, 0) || position < 0 {
		return false
	}
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration < 0 {
		return false
	}
	return true
}

// FormatSeconds renders a second count as M:SS, or H:MM:SS past the hour.
func FormatSeconds(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
