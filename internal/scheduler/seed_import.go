package scheduler

import (
	"context"
	"fmt"

	"github.com/watchdeck/watchdeck/internal/logger"
	"github.com/watchdeck/watchdeck/internal/sources/seedfile"
	"github.com/watchdeck/watchdeck/internal/store"
)

// SeedImporter imports channels.yaml once at startup. Seeded channels are
// additive: entries already subscribed are left untouched, and channels the
// user removed from the file stay subscribed.
type SeedImporter struct {
	loader   *seedfile.Loader
	mapper   *seedfile.Mapper
	channels *store.ChannelStore
	logger   logger.Logger
}

// NewSeedImporter creates a new seed importer
func NewSeedImporter(
	seedFile string,
	channels *store.ChannelStore,
	log logger.Logger,
) *SeedImporter {
	return &SeedImporter{
		loader:   seedfile.NewLoader(seedFile),
		mapper:   seedfile.NewMapper(),
		channels: channels,
		logger:   log,
	}
}

// Import loads the seed file and subscribes any channels not yet known.
func (si *SeedImporter) Import(ctx context.Context) error {
	config, err := si.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load channel seed file: %w", err)
	}

	seeded, err := si.mapper.MapChannels(config)
	if err != nil {
		return fmt.Errorf("failed to map channel seed file: %w", err)
	}

	added := 0
	for _, ch := range seeded {
		if si.channels.Add(ctx, ch) {
			added++
		}
	}

	si.logger.Info("channel seed import completed",
		logger.Int("seeded", len(seeded)),
		logger.Int("added", added))
	return nil
}
