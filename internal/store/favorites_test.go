package store

import (
	"context"
	"testing"
	"time"

	"github.com/watchdeck/watchdeck/internal/domain"
	"github.com/watchdeck/watchdeck/internal/kv"
	"github.com/watchdeck/watchdeck/internal/logger"
)

func newTestFavorites() *FavoritesLedger {
	return NewFavoritesLedger(kv.NewMemoryStore(), nil, logger.New("error", false))
}

func TestFavoritesLedger_AddDeduplicates(t *testing.T) {
	l := newTestFavorites()
	ctx := context.Background()

	l.Add(ctx, "aaa", "Title A")
	l.Add(ctx, "bbb", "Title B")
	l.Add(ctx, "aaa", "Title A")

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("len = %d after re-add, want 2", len(entries))
	}
	if entries[0].ID != "aaa" {
		t.Errorf("head = %s, want aaa (re-add moves to front)", entries[0].ID)
	}
}

func TestFavoritesLedger_PromoteToTop(t *testing.T) {
	l := newTestFavorites()
	ctx := context.Background()

	// Build [A, B, C] with A at the head.
	l.Add(ctx, "C", "Title C")
	l.Add(ctx, "B", "Title B")
	l.Add(ctx, "A", "Title A")

	if !l.PromoteToTop(ctx, "C", "") {
		t.Fatal("PromoteToTop() returned false for a member")
	}

	entries := l.Entries()
	want := []string{"C", "A", "B"}
	for i, id := range want {
		if entries[i].ID != id {
			t.Fatalf("order = %v, want [C A B]", ids(entries))
		}
	}
}

func TestFavoritesLedger_PromoteNonMemberIsNoOp(t *testing.T) {
	l := newTestFavorites()
	ctx := context.Background()

	l.Add(ctx, "aaa", "Title A")

	if l.PromoteToTop(ctx, "zzz", "Some Title") {
		t.Error("PromoteToTop() returned true for a non-member")
	}
	if l.Len() != 1 {
		t.Errorf("len = %d, want 1: promotion must never implicitly favorite", l.Len())
	}
}

func TestFavoritesLedger_PromoteRefreshesPlaceholderTitleOnly(t *testing.T) {
	l := newTestFavorites()
	ctx := context.Background()

	l.Add(ctx, "aaa", "")          // placeholder
	l.Add(ctx, "bbb", "Kept Name") // real title

	l.PromoteToTop(ctx, "aaa", "Filled In")
	l.PromoteToTop(ctx, "bbb", "Must Not Overwrite")

	a, _ := entryByID(l.Entries(), "aaa")
	if a.Title != "Filled In" {
		t.Errorf("placeholder title = %q, want refreshed %q", a.Title, "Filled In")
	}
	b, _ := entryByID(l.Entries(), "bbb")
	if b.Title != "Kept Name" {
		t.Errorf("real title = %q, want untouched %q", b.Title, "Kept Name")
	}
}

func TestFavoritesLedger_RemoveAndClear(t *testing.T) {
	l := newTestFavorites()
	ctx := context.Background()

	l.Add(ctx, "aaa", "A")
	l.Add(ctx, "bbb", "B")

	l.Remove(ctx, "aaa")
	if l.IsFavorite("aaa") {
		t.Error("IsFavorite() true after Remove")
	}
	if !l.IsFavorite("bbb") {
		t.Error("unrelated entry removed")
	}

	l.Clear(ctx)
	if l.Len() != 0 {
		t.Errorf("len = %d after Clear, want 0", l.Len())
	}
}

func TestFavoritesLedger_LoadRestoresPersistedState(t *testing.T) {
	backing := kv.NewMemoryStore()
	log := logger.New("error", false)
	ctx := context.Background()

	first := NewFavoritesLedger(backing, nil, log)
	first.Add(ctx, "aaa", "Title A")

	second := NewFavoritesLedger(backing, nil, log)
	second.Load(ctx)

	if !second.IsFavorite("aaa") {
		t.Error("reloaded ledger is missing the saved favorite")
	}
}

func TestFavoritesLedger_BackfillSurvivesCancelledCaller(t *testing.T) {
	fetcher := &ctxAwareTitleFetcher{title: "A Real Title", done: make(chan struct{})}
	l := NewFavoritesLedger(kv.NewMemoryStore(), fetcher, logger.New("error", false))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l.Add(ctx, "aaa", "")

	select {
	case <-fetcher.done:
	case <-time.After(2 * time.Second):
		t.Fatal("backfill lookup never ran")
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if e, ok := entryByID(l.Entries(), "aaa"); ok && e.Title == "A Real Title" {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	e, _ := entryByID(l.Entries(), "aaa")
	t.Errorf("title = %q, want backfilled %q despite cancelled caller", e.Title, "A Real Title")
}

func ids(entries []domain.FavoriteEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func entryByID(entries []domain.FavoriteEntry, id string) (domain.FavoriteEntry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.FavoriteEntry{}, false
}
