package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/watchdeck/watchdeck/internal/domain"
	"github.com/watchdeck/watchdeck/internal/errlog"
	"github.com/watchdeck/watchdeck/internal/kv"
	"github.com/watchdeck/watchdeck/internal/logger"
	"github.com/watchdeck/watchdeck/internal/store"
)

type fakeFetcher struct {
	videos map[string][]domain.ChannelVideo
	errs   map[string]error
	calls  []string
}

func (f *fakeFetcher) GetChannelVideos(_ context.Context, channelID string, _ int) ([]domain.ChannelVideo, error) {
	f.calls = append(f.calls, channelID)
	if err := f.errs[channelID]; err != nil {
		return nil, err
	}
	return f.videos[channelID], nil
}

func newRefreshFixture() (*store.ChannelStore, *errlog.Funnel, *fakeFetcher) {
	log := logger.New("error", false)
	channels := store.NewChannelStore(kv.NewMemoryStore(), log)
	return channels, errlog.New(log), &fakeFetcher{
		videos: make(map[string][]domain.ChannelVideo),
		errs:   make(map[string]error),
	}
}

func TestChannelRefresher_RefreshAllSkipsInactive(t *testing.T) {
	channels, funnel, fetcher := newRefreshFixture()
	ctx := context.Background()
	log := logger.New("error", false)

	channels.Add(ctx, domain.Channel{ID: "UC1", Name: "Active", IsActive: true})
	channels.Add(ctx, domain.Channel{ID: "UC2", Name: "Paused", IsActive: false})
	fetcher.videos["UC1"] = []domain.ChannelVideo{
		{ID: "v1", ChannelID: "UC1", PublishedAt: time.Now()},
	}

	cr := NewChannelRefresher(channels, fetcher, funnel, log, time.Hour, nil)
	cr.RefreshAll(ctx)

	if len(fetcher.calls) != 1 || fetcher.calls[0] != "UC1" {
		t.Errorf("fetch calls = %v, want only UC1", fetcher.calls)
	}
	if got := len(channels.Videos("UC1")); got != 1 {
		t.Errorf("UC1 videos = %d, want 1", got)
	}
}

func TestChannelRefresher_FailureIsReportedNotFatal(t *testing.T) {
	channels, funnel, fetcher := newRefreshFixture()
	ctx := context.Background()
	log := logger.New("error", false)

	channels.Add(ctx, domain.Channel{ID: "UC2", Name: "Healthy", IsActive: true})
	channels.Add(ctx, domain.Channel{ID: "UC1", Name: "Broken", IsActive: true})
	fetcher.errs["UC1"] = errors.New("quota exceeded")
	fetcher.videos["UC2"] = []domain.ChannelVideo{
		{ID: "v2", ChannelID: "UC2", PublishedAt: time.Now()},
	}

	cr := NewChannelRefresher(channels, fetcher, funnel, log, time.Hour, nil)
	cr.RefreshAll(ctx)

	// The healthy channel still refreshed.
	if got := len(channels.Videos("UC2")); got != 1 {
		t.Errorf("UC2 videos = %d, want 1 despite UC1 failing", got)
	}

	current, ok := funnel.Current()
	if !ok || current.Kind != errlog.KindChannel {
		t.Errorf("funnel current = %+v, %v; want a channel error", current, ok)
	}
}

func TestChannelRefresher_RefreshPreservesWatchedFlags(t *testing.T) {
	channels, funnel, fetcher := newRefreshFixture()
	ctx := context.Background()
	log := logger.New("error", false)

	channels.Add(ctx, domain.Channel{ID: "UC1", Name: "Active", IsActive: true})
	fetcher.videos["UC1"] = []domain.ChannelVideo{
		{ID: "v1", ChannelID: "UC1", PublishedAt: time.Now()},
	}

	cr := NewChannelRefresher(channels, fetcher, funnel, log, time.Hour, nil)
	cr.RefreshAll(ctx)
	channels.MarkWatched(ctx, "v1")
	cr.RefreshAll(ctx)

	videos := channels.Videos("UC1")
	if len(videos) != 1 || !videos[0].IsWatched {
		t.Error("watched flag lost across refresh")
	}
}
