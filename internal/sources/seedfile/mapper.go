package seedfile

import (
	"fmt"
	"strings"

	"github.com/watchdeck/watchdeck/internal/domain"
)

// Mapper converts seed file entries to domain channels
type Mapper struct{}

// NewMapper creates a new seed file mapper
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapChannels converts config entries to domain channels. Entries without
// an id are rejected.
func (m *Mapper) MapChannels(config ChannelsConfig) ([]domain.Channel, error) {
	channels := make([]domain.Channel, 0, len(config.Channels))

	for i, entry := range config.Channels {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			return nil, fmt.Errorf("channel entry %d has no id", i)
		}

		lookback := domain.DefaultLookbackDays
		if entry.LookbackDays != 0 {
			lookback = domain.ClampLookback(entry.LookbackDays)
		}

		ch := domain.Channel{
			ID:           id,
			Name:         strings.TrimSpace(entry.Name),
			Handle:       strings.TrimSpace(entry.Handle),
			LookbackDays: lookback,
			IsActive:     true,
		}
		if ch.Name == "" {
			ch.Name = id
		}
		if entry.Active != nil {
			ch.IsActive = *entry.Active
		}

		channels = append(channels, ch)
	}

	return channels, nil
}
