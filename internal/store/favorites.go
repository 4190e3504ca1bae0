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

// FavoritesLedger is the ordered, dedup-by-id list of starred videos.
// Adding is an explicit user action; replaying a favorite promotes it to
// the head without duplicating it.
type FavoritesLedger struct {
	mu      sync.RWMutex
	entries []domain.FavoriteEntry
	kv      kv.Store
	titles  TitleFetcher
	logger  logger.Logger
}

func NewFavoritesLedger(store kv.Store, titles TitleFetcher, log logger.Logger) *FavoritesLedger {
	return &FavoritesLedger{
		kv:     store,
		titles: titles,
		logger: log,
	}
}

// Load restores the ledger from the backing blob.
func (l *FavoritesLedger) Load(ctx context.Context) {
	blob, found, err := l.kv.Load(ctx, kv.KeyFavorites)
	if err != nil {
		l.logger.Warn("failed to load favorites", logger.Error(err))
		return
	}
	if !found {
		return
	}

	var entries []domain.FavoriteEntry
	if err := json.Unmarshal(blob, &entries); err != nil {
		l.logger.Warn("corrupt favorites blob, starting empty", logger.Error(err))
		return
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()

	l.logger.Info("loaded favorites", logger.Int("count", len(entries)))

	for _, e := range entries {
		if e.Title == domain.PlaceholderTitle {
			l.backfillTitle(ctx, e.ID)
		}
	}
}

// Add stars id. An existing entry moves to the head; a new one is inserted
// at the head. When title is empty the placeholder is used and a backfill
// lookup is launched.
func (l *FavoritesLedger) Add(ctx context.Context, id, title string) {
	fresh := false

	l.mu.Lock()
	if i := l.indexOf(id); i >= 0 {
		entry := l.entries[i]
		if title != "" && entry.Title == domain.PlaceholderTitle {
			entry.Title = title
		}
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
		l.entries = append([]domain.FavoriteEntry{entry}, l.entries...)
	} else {
		if title == "" {
			title = domain.PlaceholderTitle
			fresh = true
		}
		l.entries = append([]domain.FavoriteEntry{{
			ID:          id,
			Title:       title,
			FavoritedAt: time.Now(),
		}}, l.entries...)
	}
	l.mu.Unlock()

	l.persist(ctx)
	if fresh {
		l.backfillTitle(ctx, id)
	}
}

// PromoteToTop moves an existing favorite to the head, refreshing its title
// only if the stored one is still the placeholder. A non-member is a no-op:
// promotion never implicitly favorites something.
func (l *FavoritesLedger) PromoteToTop(ctx context.Context, id, title string) bool {
	l.mu.Lock()
	i := l.indexOf(id)
	if i < 0 {
		l.mu.Unlock()
		return false
	}
	entry := l.entries[i]
	if title != "" && entry.Title == domain.PlaceholderTitle {
		entry.Title = title
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	l.entries = append([]domain.FavoriteEntry{entry}, l.entries...)
	l.mu.Unlock()

	l.persist(ctx)
	return true
}

// Remove unstars id, if present.
func (l *FavoritesLedger) Remove(ctx context.Context, id string) {
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

// Clear empties the ledger.
func (l *FavoritesLedger) Clear(ctx context.Context) {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
	l.persist(ctx)
}

// IsFavorite reports membership of id.
func (l *FavoritesLedger) IsFavorite(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.indexOf(id) >= 0
}

// Entries returns a snapshot of the ledger in order.
func (l *FavoritesLedger) Entries() []domain.FavoriteEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.FavoriteEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *FavoritesLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// indexOf must be called with the lock held.
func (l *FavoritesLedger) indexOf(id string) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (l *FavoritesLedger) backfillTitle(ctx context.Context, id string) {
	if l.titles == nil {
		return
	}
	// The lookup outlives the caller: an HTTP request context is cancelled
	// as soon as the handler returns, which would abort the fetch.
	ctx = context.WithoutCancel(ctx)
	go func() {
		title, err := l.titles.VideoTitle(ctx, id)
		if err != nil || title == "" {
			l.logger.Debug("favorite title backfill failed",
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

func (l *FavoritesLedger) persist(ctx context.Context) {
	l.mu.RLock()
	blob, err := json.Marshal(l.entries)
	l.mu.RUnlock()
	if err != nil {
		l.logger.Warn("failed to marshal favorites", logger.Error(err))
		return
	}
	if err := l.kv.Save(ctx, kv.KeyFavorites, blob); err != nil {
		l.logger.Warn("failed to persist favorites", logger.Error(err))
	}
}
