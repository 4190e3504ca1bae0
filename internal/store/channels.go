package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/watchdeck/watchdeck/internal/domain"
	"github.com/watchdeck/watchdeck/internal/kv"
	"github.com/watchdeck/watchdeck/internal/logger"
)

// ChannelStore owns the subscribed channels list and the per-channel video
// partitions. Channels and videos are persisted as two separate blobs, the
// way they are two separate tables conceptually.
type ChannelStore struct {
	mu       sync.RWMutex
	channels []domain.Channel
	videos   map[string][]domain.ChannelVideo // channel id -> videos
	kv       kv.Store
	logger   logger.Logger
}

func NewChannelStore(store kv.Store, log logger.Logger) *ChannelStore {
	return &ChannelStore{
		videos: make(map[string][]domain.ChannelVideo),
		kv:     store,
		logger: log,
	}
}

// Load restores channels and their videos from the backing blobs.
func (s *ChannelStore) Load(ctx context.Context) {
	if blob, found, err := s.kv.Load(ctx, kv.KeyChannels); err != nil {
		s.logger.Warn("failed to load channels", logger.Error(err))
	} else if found {
		var channels []domain.Channel
		if err := json.Unmarshal(blob, &channels); err != nil {
			s.logger.Warn("corrupt channels blob, starting empty", logger.Error(err))
		} else {
			s.mu.Lock()
			s.channels = channels
			s.mu.Unlock()
		}
	}

	if blob, found, err := s.kv.Load(ctx, kv.KeyChannelVideos); err != nil {
		s.logger.Warn("failed to load channel videos", logger.Error(err))
	} else if found {
		var videos map[string][]domain.ChannelVideo
		if err := json.Unmarshal(blob, &videos); err != nil {
			s.logger.Warn("corrupt channel videos blob, starting empty", logger.Error(err))
		} else {
			s.mu.Lock()
			s.videos = videos
			s.mu.Unlock()
		}
	}

	s.mu.RLock()
	s.logger.Info("loaded channel subscriptions",
		logger.Int("channels", len(s.channels)),
		logger.Int("partitions", len(s.videos)))
	s.mu.RUnlock()
}

// Add subscribes a channel, inserting at the head. Returns false when the
// channel is already subscribed.
func (s *ChannelStore) Add(ctx context.Context, ch domain.Channel) bool {
	now := time.Now()
	if ch.DateAdded.IsZero() {
		ch.DateAdded = now
	}
	ch.LastUpdated = now
	ch.LookbackDays = domain.ClampLookback(ch.LookbackDays)

	s.mu.Lock()
	if s.indexOf(ch.ID) >= 0 {
		s.mu.Unlock()
		return false
	}
	s.channels = append([]domain.Channel{ch}, s.channels...)
	s.mu.Unlock()

	s.persistChannels(ctx)
	return true
}

// Remove unsubscribes a channel and drops its video partition.
func (s *ChannelStore) Remove(ctx context.Context, channelID string) {
	s.mu.Lock()
	i := s.indexOf(channelID)
	if i >= 0 {
		s.channels = append(s.channels[:i], s.channels[i+1:]...)
	}
	_, hadVideos := s.videos[channelID]
	delete(s.videos, channelID)
	s.mu.Unlock()

	if i >= 0 {
		s.persistChannels(ctx)
	}
	if hadVideos {
		s.persistVideos(ctx)
	}
}

// Update replaces the stored channel with the same id.
func (s *ChannelStore) Update(ctx context.Context, ch domain.Channel) bool {
	ch.LastUpdated = time.Now()
	ch.LookbackDays = domain.ClampLookback(ch.LookbackDays)

	s.mu.Lock()
	i := s.indexOf(ch.ID)
	if i >= 0 {
		s.channels[i] = ch
	}
	s.mu.Unlock()

	if i < 0 {
		return false
	}
	s.persistChannels(ctx)
	return true
}

// ToggleActive flips the refresh gate for a channel.
func (s *ChannelStore) ToggleActive(ctx context.Context, channelID string) bool {
	s.mu.Lock()
	i := s.indexOf(channelID)
	if i >= 0 {
		s.channels[i].IsActive = !s.channels[i].IsActive
		s.channels[i].LastUpdated = time.Now()
	}
	s.mu.Unlock()

	if i < 0 {
		return false
	}
	s.persistChannels(ctx)
	return true
}

// SetLookback updates a channel's trailing fetch window, clamped to the
// allowed range.
func (s *ChannelStore) SetLookback(ctx context.Context, channelID string, days int) bool {
	days = domain.ClampLookback(days)

	s.mu.Lock()
	i := s.indexOf(channelID)
	if i >= 0 {
		s.channels[i].LookbackDays = days
		s.channels[i].LastUpdated = time.Now()
	}
	s.mu.Unlock()

	if i < 0 {
		return false
	}
	s.persistChannels(ctx)
	return true
}

// Get returns the channel with the given id.
func (s *ChannelStore) Get(channelID string) (domain.Channel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(channelID); i >= 0 {
		return s.channels[i], true
	}
	return domain.Channel{}, false
}

// Channels returns a snapshot of all subscriptions in order.
func (s *ChannelStore) Channels() []domain.Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Channel, len(s.channels))
	copy(out, s.channels)
	return out
}

// ActiveChannels returns only the channels eligible for refresh.
func (s *ChannelStore) ActiveChannels() []domain.Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Channel
	for _, ch := range s.channels {
		if ch.IsActive {
			out = append(out, ch)
		}
	}
	return out
}

// ReplaceVideos swaps a channel's video partition for freshly fetched
// uploads, preserving the watched flags of videos that survive the swap.
func (s *ChannelStore) ReplaceVideos(ctx context.Context, channelID string, videos []domain.ChannelVideo) {
	s.mu.Lock()
	watched := make(map[string]*time.Time)
	for _, v := range s.videos[channelID] {
		if v.IsWatched {
			watched[v.ID] = v.WatchedAt
		}
	}
	for i := range videos {
		if at, ok := watched[videos[i].ID]; ok {
			videos[i].IsWatched = true
			videos[i].WatchedAt = at
		}
	}
	s.videos[channelID] = videos
	if i := s.indexOf(channelID); i >= 0 {
		s.channels[i].LastUpdated = time.Now()
	}
	s.mu.Unlock()

	s.persistVideos(ctx)
	s.persistChannels(ctx)
}

// Videos returns a snapshot of one channel's partition.
func (s *ChannelStore) Videos(channelID string) []domain.ChannelVideo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ChannelVideo, len(s.videos[channelID]))
	copy(out, s.videos[channelID])
	return out
}

// MarkWatched flags a video as watched wherever it lives. Idempotent: a
// second call for the same id changes nothing.
func (s *ChannelStore) MarkWatched(ctx context.Context, videoID string) bool {
	changed := false

	s.mu.Lock()
	for channelID, videos := range s.videos {
		for i := range videos {
			if videos[i].ID == videoID && !videos[i].IsWatched {
				now := time.Now()
				videos[i].IsWatched = true
				videos[i].WatchedAt = &now
				s.videos[channelID] = videos
				changed = true
			}
		}
	}
	s.mu.Unlock()

	if changed {
		s.persistVideos(ctx)
	}
	return changed
}

// UnwatchedCount returns the number of unwatched videos for one channel.
func (s *ChannelStore) UnwatchedCount(channelID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, v := range s.videos[channelID] {
		if !v.IsWatched {
			n++
		}
	}
	return n
}

// AllUnwatched returns every unwatched video across all channels, newest
// published first.
func (s *ChannelStore) AllUnwatched() []domain.ChannelVideo {
	s.mu.RLock()
	var out []domain.ChannelVideo
	for _, videos := range s.videos {
		for _, v := range videos {
			if !v.IsWatched {
				out = append(out, v)
			}
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}

// indexOf must be called with the lock held.
func (s *ChannelStore) indexOf(channelID string) int {
	for i, ch := range s.channels {
		if ch.ID == channelID {
			return i
		}
	}
	return -1
}

func (s *ChannelStore) persistChannels(ctx context.Context) {
	s.mu.RLock()
	blob, err := json.Marshal(s.channels)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Warn("failed to marshal channels", logger.Error(err))
		return
	}
	if err := s.kv.Save(ctx, kv.KeyChannels, blob); err != nil {
		s.logger.Warn("failed to persist channels", logger.Error(err))
	}
}

func (s *ChannelStore) persistVideos(ctx context.Context) {
	s.mu.RLock()
	blob, err := json.Marshal(s.videos)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Warn("failed to marshal channel videos", logger.Error(err))
		return
	}
	if err := s.kv.Save(ctx, kv.KeyChannelVideos, blob); err != nil {
		s.logger.Warn("failed to persist channel videos", logger.Error(err))
	}
}
