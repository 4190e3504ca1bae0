package scheduler

import (
	"context"
	"time"

	"github.com/watchdeck/watchdeck/internal/domain"
	"github.com/watchdeck/watchdeck/internal/errlog"
	"github.com/watchdeck/watchdeck/internal/logger"
	"github.com/watchdeck/watchdeck/internal/store"
)

// VideoFetcher is the slice of the YouTube client the refresher needs.
type VideoFetcher interface {
	GetChannelVideos(ctx context.Context, channelID string, lookbackDays int) ([]domain.ChannelVideo, error)
}

// ChannelRefresher handles periodic fetching of subscribed channels' uploads
type ChannelRefresher struct {
	channels      *store.ChannelStore
	fetcher       VideoFetcher
	errs          *errlog.Funnel
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewChannelRefresher creates a new channel refresher
func NewChannelRefresher(
	channels *store.ChannelStore,
	fetcher VideoFetcher,
	errs *errlog.Funnel,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ChannelRefresher {
	return &ChannelRefresher{
		channels:      channels,
		fetcher:       fetcher,
		errs:          errs,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start refreshes immediately, then on every tick and manual trigger.
func (cr *ChannelRefresher) Start(ctx context.Context) error {
	cr.RefreshAll(ctx)

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cr.RefreshAll(ctx)
			case <-cr.manualTrigger:
				cr.logger.Info("manual channel refresh triggered")
				cr.RefreshAll(ctx)
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the refresher
func (cr *ChannelRefresher) Stop() {
	close(cr.stopCh)
}

// RefreshAll fetches recent uploads for every active channel. A failing
// channel is reported and skipped; the rest still refresh.
func (cr *ChannelRefresher) RefreshAll(ctx context.Context) {
	active := cr.channels.ActiveChannels()
	if len(active) == 0 {
		cr.logger.Debug("no active channels to refresh")
		return
	}

	refreshed := 0
	for _, ch := range active {
		if err := cr.RefreshOne(ctx, ch); err != nil {
			cr.errs.Report(errlog.KindChannel, "failed to refresh channel "+ch.Name, err)
			continue
		}
		refreshed++
	}

	cr.logger.Info("channel refresh completed",
		logger.Int("refreshed", refreshed),
		logger.Int("failed", len(active)-refreshed))
}

// RefreshOne replaces a single channel's video partition with fresh uploads.
func (cr *ChannelRefresher) RefreshOne(ctx context.Context, ch domain.Channel) error {
	videos, err := cr.fetcher.GetChannelVideos(ctx, ch.ID, ch.LookbackDays)
	if err != nil {
		return err
	}

	cr.channels.ReplaceVideos(ctx, ch.ID, videos)
	cr.logger.Debug("refreshed channel",
		logger.String("channel_id", ch.ID),
		logger.String("channel", ch.Name),
		logger.Int("videos", len(videos)))
	return nil
}
