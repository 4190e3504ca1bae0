// Package store holds the four persisted state owners: playback positions,
// watch history, favorites and channel subscriptions. Each store owns its
// in-memory table exclusively and persists the whole table as one blob
// through the kv contract after every mutation. Memory is the source of
// truth; a failed persistence write is logged and otherwise ignored, and a
// corrupt blob on load degrades to empty state.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/watchdeck/watchdeck/internal/domain"
	"github.com/watchdeck/watchdeck/internal/kv"
	"github.com/watchdeck/watchdeck/internal/logger"
)

// DefaultRetentionDays is how long an untouched position record survives
// before pruning removes it.
const DefaultRetentionDays = 30

// PositionStore is the durable bookmark of where playback left off per
// video, keyed by video id.
type PositionStore struct {
	mu        sync.RWMutex
	positions map[string]domain.PlaybackPosition
	kv        kv.Store
	logger    logger.Logger
}

func NewPositionStore(store kv.Store, log logger.Logger) *PositionStore {
	return &PositionStore{
		positions: make(map[string]domain.PlaybackPosition),
		kv:        store,
		logger:    log,
	}
}

// Load restores the position table from the backing blob. An absent or
// undecodable blob yields an empty table.
func (s *PositionStore) Load(ctx context.Context) {
	blob, found, err := s.kv.Load(ctx, kv.KeyPositions)
	if err != nil {
		s.logger.Warn("failed to load playback positions", logger.Error(err))
		return
	}
	if !found {
		return
	}

	var positions map[string]domain.PlaybackPosition
	if err := json.Unmarshal(blob, &positions); err != nil {
		s.logger.Warn("corrupt playback positions blob, starting empty", logger.Error(err))
		return
	}

	s.mu.Lock()
	s.positions = positions
	s.mu.Unlock()

	s.logger.Info("loaded playback positions", logger.Int("count", len(positions)))
}

// Save upserts the position record for id, overwriting in place. Reports
// with a non-finite or negative offset are rejected so an unready player
// can never corrupt a record. Returns whether the record was stored.
func (s *PositionStore) Save(ctx context.Context, id string, position, duration float64) bool {
	if id == "" || !domain.ValidOffsets(position, duration) {
		s.logger.Debug("rejected playback position report",
			logger.String("video_id", id),
			logger.Float64("position", position),
			logger.Float64("duration", duration))
		return false
	}

	s.mu.Lock()
	s.positions[id] = domain.PlaybackPosition{
		VideoID:     id,
		Position:    position,
		Duration:    duration,
		LastUpdated: time.Now(),
	}
	s.mu.Unlock()

	s.persist(ctx)
	return true
}

// Get returns the record for id, if any.
func (s *PositionStore) Get(id string) (domain.PlaybackPosition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.positions[id]
	return p, ok
}

// Clear removes the record for id; used by "restart from beginning".
func (s *PositionStore) Clear(ctx context.Context, id string) {
	s.mu.Lock()
	_, existed := s.positions[id]
	delete(s.positions, id)
	s.mu.Unlock()

	if existed {
		s.persist(ctx)
	}
}

// PruneOlderThan deletes records whose LastUpdated predates the cutoff and
// returns how many were removed.
func (s *PositionStore) PruneOlderThan(ctx context.Context, days int) int {
	if days <= 0 {
		days = DefaultRetentionDays
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	s.mu.Lock()
	removed := 0
	for id, p := range s.positions {
		if p.LastUpdated.Before(cutoff) {
			delete(s.positions, id)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		s.persist(ctx)
	}
	return removed
}

// All returns a snapshot of every record.
func (s *PositionStore) All() []domain.PlaybackPosition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PlaybackPosition, 0, len(s.positions))
	for _, p := range s.positions {
		out = append(out, p)
	}
	return out
}

// Len returns the number of stored records.
func (s *PositionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.positions)
}

func (s *PositionStore) persist(ctx context.Context) {
	s.mu.RLock()
	blob, err := json.Marshal(s.positions)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Warn("failed to marshal playback positions", logger.Error(err))
		return
	}
	if err := s.kv.Save(ctx, kv.KeyPositions, blob); err != nil {
		s.logger.Warn("failed to persist playback positions", logger.Error(err))
	}
}
