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

// TitleFetcher resolves a video id to its display title. Implemented by the
// oEmbed lookup; injected so the ledgers stay network-free in tests.
type TitleFetcher interface {
	VideoTitle(ctx context.Context, id string) (string, error)
}

// HistoryLedger is the ordered, dedup-by-id list of watched videos,
// most-recently-watched first.
type HistoryLedger struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
	kv      kv.Store
	titles  TitleFetcher
	logger  logger.Logger
}

// NewHistoryLedger creates the ledger. titles may be nil, in which case new
// entries keep their placeholder title.
func NewHistoryLedger(store kv.Store, titles TitleFetcher, log logger.Logger) *HistoryLedger {
	return &HistoryLedger{
		kv:     store,
		titles: titles,
		logger: log,
	}
}

// Load restores the ledger from the backing blob and re-issues backfill for
// entries still carrying the placeholder title.
func (l *HistoryLedger) Load(ctx context.Context) {
	blob, found, err := l.kv.Load(ctx, kv.KeyHistory)
	if err != nil {
		l.logger.Warn("failed to load history", logger.Error(err))
		return
	}
	if !found {
		return
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(blob, &entries); err != nil {
		l.logger.Warn("corrupt history blob, starting empty", logger.Error(err))
		return
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()

	l.logger.Info("loaded history", logger.Int("count", len(entries)))

	for _, e := range entries {
		if e.Title == domain.PlaceholderTitle {
			l.backfillTitle(ctx, e.ID)
		}
	}
}

// Add records a watch of id. An existing entry moves to the head with a
// refreshed timestamp; a new entry is inserted at the head with a
// placeholder title and a fire-and-forget title backfill.
func (l *HistoryLedger) Add(ctx context.Context, id string) {
	now := time.Now()
	fresh := false

	l.mu.Lock()
	if i := l.indexOf(id); i >= 0 {
		entry := l.entries[i]
		entry.WatchedAt = now
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
		l.entries = append([]domain.HistoryEntry{entry}, l.entries...)
	} else {
		l.entries = append([]domain.HistoryEntry{{
			ID:        id,
			Title:     domain.PlaceholderTitle,
			WatchedAt: now,
		}}, l.entries...)
		fresh = true
	}
	l.mu.Unlock()

	l.persist(ctx)
	if fresh {
		l.backfillTitle(ctx, id)
	}
}

// Remove deletes the entry for id, if present.
func (l *HistoryLedger) Remove(ctx context.Context, id string) {
	l.mu.Lock()
	i := l.indexOf(id)
	if i >= 0 {
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
	}
	l.mu.Unlock()

	if i >= 0 {
		l.persist(ctx)
	}
}

// RemoveAt deletes the entry at index. Out-of-range indexes are ignored.
func (l *HistoryLedger) RemoveAt(ctx context.Context, index int) {
	l.mu.Lock()
	ok := index >= 0 && index < len(l.entries)
	if ok {
		l.entries = append(l.entries[:index], l.entries[index+1:]...)
	}
	l.mu.Unlock()

	if ok {
		l.persist(ctx)
	}
}

// Clear empties the ledger.
func (l *HistoryLedger) Clear(ctx context.Context) {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
	l.persist(ctx)
}

// Entries returns a snapshot of the ledger in order.
func (l *HistoryLedger) Entries() []domain.HistoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Get returns the entry for id, if present.
func (l *HistoryLedger) Get(id string) (domain.HistoryEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.indexOf(id); i >= 0 {
		return l.entries[i], true
	}
	return domain.HistoryEntry{}, false
}

// Len returns the number of entries.
func (l *HistoryLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// indexOf must be called with the lock held.
func (l *HistoryLedger) indexOf(id string) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// backfillTitle launches a fire-and-forget title lookup for id. The patch
// checks that the entry still exists and still carries the placeholder;
// a deleted entry is never resurrected, a failed lookup leaves the
// placeholder in place with no retry.
func (l *HistoryLedger) backfillTitle(ctx context.Context, id string) {
	if l.titles == nil {
		return
	}
	// The lookup outlives the caller: an HTTP request context is cancelled
	// as soon as the handler returns, which would abort the fetch.
	ctx = context.WithoutCancel(ctx)
	go func() {
		title, err := l.titles.VideoTitle(ctx, id)
		if err != nil || title == "" {
			l.logger.Debug("title backfill failed",
				logger.String("video_id", id),
				logger.Error(err))
			return
		}

		l.mu.Lock()
		i := l.indexOf(id)
		patched := i >= 0 && l.entries[i].Title == domain.PlaceholderTitle
		if patched {
			l.entries[i].Title = title
		}
		l.mu.Unlock()

		if patched {
			l.persist(ctx)
		}
	}()
}

func (l *HistoryLedger) persist(ctx context.Context) {
	l.mu.RLock()
	blob, err := json.Marshal(l.entries)
	l.mu.RUnlock()
	if err != nil {
		l.logger.Warn("failed to marshal history", logger.Error(err))
		return
	}
	if err := l.kv.Save(ctx, kv.KeyHistory, blob); err != nil {
		l.logger.Warn("failed to persist history", logger.Error(err))
	}
}
