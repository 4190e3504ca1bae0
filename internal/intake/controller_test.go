package intake

import (
	"context"
	"testing"

	"github.com/watchdeck/watchdeck/internal/kv"
	"github.com/watchdeck/watchdeck/internal/logger"
	"github.com/watchdeck/watchdeck/internal/store"
)

type recordingSession struct {
	begun []string
}

func (r *recordingSession) Begin(_ context.Context, videoID string, _ bool) {
	r.begun = append(r.begun, videoID)
}

func newTestController() (*Controller, *store.HistoryLedger, *store.FavoritesLedger, *recordingSession) {
	log := logger.New("error", false)
	history := store.NewHistoryLedger(kv.NewMemoryStore(), nil, log)
	favorites := store.NewFavoritesLedger(kv.NewMemoryStore(), nil, log)
	sess := &recordingSession{}
	return NewController(history, favorites, sess, log), history, favorites, sess
}

func TestController_SetActiveRecordsHistoryAndArmsSession(t *testing.T) {
	c, history, _, sess := newTestController()
	ctx := context.Background()

	if !c.SetActive(ctx, "abc") {
		t.Fatal("SetActive() = false for a new id")
	}
	if c.Active() != "abc" {
		t.Errorf("Active() = %s, want abc", c.Active())
	}
	if history.Len() != 1 {
		t.Errorf("history len = %d, want 1", history.Len())
	}
	if len(sess.begun) != 1 || sess.begun[0] != "abc" {
		t.Errorf("session begins = %v, want [abc]", sess.begun)
	}
}

func TestController_SetActiveSameIDIsNoOp(t *testing.T) {
	c, history, _, sess := newTestController()
	ctx := context.Background()

	c.SetActive(ctx, "abc")
	if c.SetActive(ctx, "abc") {
		t.Error("SetActive() = true for the already active id")
	}
	if history.Len() != 1 {
		t.Errorf("history len = %d after repeat, want 1", history.Len())
	}
	if len(sess.begun) != 1 {
		t.Errorf("session armed %d times after repeat, want 1", len(sess.begun))
	}
}

func TestController_SetActivePromotesExistingFavoriteOnly(t *testing.T) {
	c, _, favorites, _ := newTestController()
	ctx := context.Background()

	favorites.Add(ctx, "old", "Old Favorite")
	favorites.Add(ctx, "fav", "Starred")

	c.SetActive(ctx, "old")
	if favorites.Entries()[0].ID != "old" {
		t.Errorf("favorites head = %s, want old promoted", favorites.Entries()[0].ID)
	}

	c.SetActive(ctx, "plain")
	if favorites.IsFavorite("plain") {
		t.Error("activation implicitly favorited a non-favorite")
	}
}

func TestController_SwitchingVideosMovesHistoryHead(t *testing.T) {
	c, history, _, _ := newTestController()
	ctx := context.Background()

	c.SetActive(ctx, "aaa")
	c.SetActive(ctx, "bbb")
	c.SetActive(ctx, "aaa")

	entries := history.Entries()
	if len(entries) != 2 {
		t.Fatalf("history len = %d, want 2", len(entries))
	}
	if entries[0].ID != "aaa" || entries[1].ID != "bbb" {
		t.Errorf("history order = [%s %s], want [aaa bbb]", entries[0].ID, entries[1].ID)
	}
}

func TestController_RejectsEmptyID(t *testing.T) {
	c, history, _, _ := newTestController()
	if c.SetActive(context.Background(), "") {
		t.Error("SetActive(\"\") = true")
	}
	if history.Len() != 0 {
		t.Error("empty activation touched history")
	}
}

func TestController_ClearActive(t *testing.T) {
	c, _, _, _ := newTestController()
	ctx := context.Background()

	c.SetActive(ctx, "abc")
	c.ClearActive()
	if c.Active() != "" {
		t.Errorf("Active() = %s after clear, want empty", c.Active())
	}
	// The same id activates again after a clear.
	if !c.SetActive(ctx, "abc") {
		t.Error("SetActive() = false after ClearActive")
	}
}
