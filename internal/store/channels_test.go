package store

import (
	"context"
	"testing"
	"time"

	"github.com/watchdeck/watchdeck/internal/domain"
	"github.com/watchdeck/watchdeck/internal/kv"
	"github.com/watchdeck/watchdeck/internal/logger"
)

func newTestChannelStore() *ChannelStore {
	return NewChannelStore(kv.NewMemoryStore(), logger.New("error", false))
}

func testChannel(id, name string) domain.Channel {
	return domain.Channel{
		ID:           id,
		Name:         name,
		LookbackDays: domain.DefaultLookbackDays,
		IsActive:     true,
	}
}

func testVideo(id, channelID string, published time.Time) domain.ChannelVideo {
	return domain.ChannelVideo{
		ID:          id,
		Title:       "video " + id,
		ChannelID:   channelID,
		PublishedAt: published,
	}
}

func TestChannelStore_AddDeduplicates(t *testing.T) {
	s := newTestChannelStore()
	ctx := context.Background()

	if !s.Add(ctx, testChannel("UC1", "First")) {
		t.Fatal("Add() = false for a new channel")
	}
	if s.Add(ctx, testChannel("UC1", "First again")) {
		t.Error("Add() = true for an already subscribed channel")
	}
	if got := len(s.Channels()); got != 1 {
		t.Errorf("len(Channels()) = %d, want 1", got)
	}
}

func TestChannelStore_AddInsertsAtHeadAndClampsLookback(t *testing.T) {
	s := newTestChannelStore()
	ctx := context.Background()

	s.Add(ctx, testChannel("UC1", "First"))
	ch := testChannel("UC2", "Second")
	ch.LookbackDays = 90
	s.Add(ctx, ch)

	channels := s.Channels()
	if channels[0].ID != "UC2" {
		t.Errorf("head = %s, want UC2", channels[0].ID)
	}
	if channels[0].LookbackDays != domain.MaxLookbackDays {
		t.Errorf("LookbackDays = %d, want clamped %d", channels[0].LookbackDays, domain.MaxLookbackDays)
	}
	if channels[0].DateAdded.IsZero() {
		t.Error("DateAdded not stamped on Add")
	}
}

func TestChannelStore_RemoveCascadesToVideos(t *testing.T) {
	s := newTestChannelStore()
	ctx := context.Background()

	s.Add(ctx, testChannel("UC1", "First"))
	s.ReplaceVideos(ctx, "UC1", []domain.ChannelVideo{
		testVideo("v1", "UC1", time.Now()),
	})

	s.Remove(ctx, "UC1")

	if _, ok := s.Get("UC1"); ok {
		t.Error("channel still present after Remove")
	}
	if got := len(s.Videos("UC1")); got != 0 {
		t.Errorf("len(Videos()) = %d after Remove, want 0", got)
	}
}

func TestChannelStore_ToggleActiveAndActiveChannels(t *testing.T) {
	s := newTestChannelStore()
	ctx := context.Background()

	s.Add(ctx, testChannel("UC1", "First"))
	s.Add(ctx, testChannel("UC2", "Second"))

	if !s.ToggleActive(ctx, "UC1") {
		t.Fatal("ToggleActive() = false for a member")
	}
	if s.ToggleActive(ctx, "missing") {
		t.Error("ToggleActive() = true for a non-member")
	}

	active := s.ActiveChannels()
	if len(active) != 1 || active[0].ID != "UC2" {
		t.Errorf("ActiveChannels() = %v, want just UC2", active)
	}
}

func TestChannelStore_SetLookbackClamps(t *testing.T) {
	s := newTestChannelStore()
	ctx := context.Background()

	s.Add(ctx, testChannel("UC1", "First"))

	s.SetLookback(ctx, "UC1", 0)
	if ch, _ := s.Get("UC1"); ch.LookbackDays != domain.MinLookbackDays {
		t.Errorf("LookbackDays = %d after SetLookback(0), want %d", ch.LookbackDays, domain.MinLookbackDays)
	}

	s.SetLookback(ctx, "UC1", 365)
	if ch, _ := s.Get("UC1"); ch.LookbackDays != domain.MaxLookbackDays {
		t.Errorf("LookbackDays = %d after SetLookback(365), want %d", ch.LookbackDays, domain.MaxLookbackDays)
	}
}

func TestChannelStore_ReplaceVideosPreservesWatchedFlags(t *testing.T) {
	s := newTestChannelStore()
	ctx := context.Background()
	now := time.Now()

	s.Add(ctx, testChannel("UC1", "First"))
	s.ReplaceVideos(ctx, "UC1", []domain.ChannelVideo{
		testVideo("v1", "UC1", now.Add(-time.Hour)),
		testVideo("v2", "UC1", now),
	})
	s.MarkWatched(ctx, "v1")

	// Refresh returns v1 again plus a newer upload.
	s.ReplaceVideos(ctx, "UC1", []domain.ChannelVideo{
		testVideo("v1", "UC1", now.Add(-time.Hour)),
		testVideo("v3", "UC1", now.Add(time.Hour)),
	})

	videos := s.Videos("UC1")
	byID := make(map[string]domain.ChannelVideo, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	if !byID["v1"].IsWatched || byID["v1"].WatchedAt == nil {
		t.Error("v1 lost its watched flag across ReplaceVideos")
	}
	if byID["v3"].IsWatched {
		t.Error("new video v3 should start unwatched")
	}
	if _, ok := byID["v2"]; ok {
		t.Error("v2 should have been dropped by the swap")
	}
}

func TestChannelStore_MarkWatchedIsIdempotent(t *testing.T) {
	s := newTestChannelStore()
	ctx := context.Background()

	s.Add(ctx, testChannel("UC1", "First"))
	s.ReplaceVideos(ctx, "UC1", []domain.ChannelVideo{
		testVideo("v1", "UC1", time.Now()),
	})

	if !s.MarkWatched(ctx, "v1") {
		t.Fatal("MarkWatched() = false on first call")
	}
	first := s.Videos("UC1")[0].WatchedAt

	if s.MarkWatched(ctx, "v1") {
		t.Error("MarkWatched() = true on second call, want idempotent no-op")
	}
	second := s.Videos("UC1")[0].WatchedAt
	if !first.Equal(*second) {
		t.Error("second MarkWatched call moved the watched timestamp")
	}

	if s.MarkWatched(ctx, "missing") {
		t.Error("MarkWatched() = true for an unknown video")
	}
}

func TestChannelStore_UnwatchedViews(t *testing.T) {
	s := newTestChannelStore()
	ctx := context.Background()
	now := time.Now()

	s.Add(ctx, testChannel("UC1", "First"))
	s.Add(ctx, testChannel("UC2", "Second"))
	s.ReplaceVideos(ctx, "UC1", []domain.ChannelVideo{
		testVideo("v1", "UC1", now.Add(-2*time.Hour)),
		testVideo("v2", "UC1", now),
	})
	s.ReplaceVideos(ctx, "UC2", []domain.ChannelVideo{
		testVideo("v3", "UC2", now.Add(-time.Hour)),
	})
	s.MarkWatched(ctx, "v1")

	if got := s.UnwatchedCount("UC1"); got != 1 {
		t.Errorf("UnwatchedCount(UC1) = %d, want 1", got)
	}

	all := s.AllUnwatched()
	if len(all) != 2 {
		t.Fatalf("len(AllUnwatched()) = %d, want 2", len(all))
	}
	if all[0].ID != "v2" || all[1].ID != "v3" {
		t.Errorf("AllUnwatched() order = [%s %s], want newest first [v2 v3]", all[0].ID, all[1].ID)
	}
}

func TestChannelStore_LoadRestoresPersistedState(t *testing.T) {
	backing := kv.NewMemoryStore()
	log := logger.New("error", false)
	ctx := context.Background()

	first := NewChannelStore(backing, log)
	first.Add(ctx, testChannel("UC1", "First"))
	first.ReplaceVideos(ctx, "UC1", []domain.ChannelVideo{
		testVideo("v1", "UC1", time.Now()),
	})
	first.MarkWatched(ctx, "v1")

	second := NewChannelStore(backing, log)
	second.Load(ctx)

	if _, ok := second.Get("UC1"); !ok {
		t.Fatal("reloaded store is missing the channel")
	}
	videos := second.Videos("UC1")
	if len(videos) != 1 || !videos[0].IsWatched {
		t.Error("reloaded store lost the video partition or its watched flag")
	}
}
