package scheduler

import (
	"context"
	"time"

	"github.com/watchdeck/watchdeck/internal/logger"
	"github.com/watchdeck/watchdeck/internal/store"
)

// PositionPruner handles age-based cleanup of stored playback positions
type PositionPruner struct {
	positions     *store.PositionStore
	logger        logger.Logger
	interval      time.Duration
	retentionDays int
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewPositionPruner creates a new position pruner
func NewPositionPruner(
	positions *store.PositionStore,
	log logger.Logger,
	interval time.Duration,
	retentionDays int,
	manualTrigger chan struct{},
) *PositionPruner {
	if retentionDays <= 0 {
		retentionDays = store.DefaultRetentionDays
	}

	return &PositionPruner{
		positions:     positions,
		logger:        log,
		interval:      interval,
		retentionDays: retentionDays,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs a prune immediately, then on every tick and manual trigger.
func (pp *PositionPruner) Start(ctx context.Context) error {
	pp.Prune(ctx)

	ticker := time.NewTicker(pp.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				pp.Prune(ctx)
			case <-pp.manualTrigger:
				pp.logger.Info("manual position prune triggered")
				pp.Prune(ctx)
			case <-pp.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the pruner
func (pp *PositionPruner) Stop() {
	close(pp.stopCh)
}

// Prune drops positions older than the retention window.
func (pp *PositionPruner) Prune(ctx context.Context) {
	pruned := pp.positions.PruneOlderThan(ctx, pp.retentionDays)
	if pruned > 0 {
		pp.logger.Info("pruned stale playback positions",
			logger.Int("pruned", pruned),
			logger.Int("retention_days", pp.retentionDays))
	} else {
		pp.logger.Debug("no playback positions to prune")
	}
}
