package seedfile

import (
	"testing"

	"github.com/watchdeck/watchdeck/internal/domain"
)

func TestMapper_MapChannels(t *testing.T) {
	inactive := false
	config := ChannelsConfig{Channels: []ChannelEntry{
		{ID: "UCabc", Name: "Some Channel", Handle: "@somechannel", LookbackDays: 14},
		{ID: "UCdef"},
		{ID: "UCghi", LookbackDays: 99, Active: &inactive},
	}}

	channels, err := NewMapper().MapChannels(config)
	if err != nil {
		t.Fatalf("MapChannels() error = %v", err)
	}
	if len(channels) != 3 {
		t.Fatalf("got %d channels, want 3", len(channels))
	}

	if channels[0].LookbackDays != 14 || !channels[0].IsActive {
		t.Errorf("first = %+v", channels[0])
	}
	if channels[1].Name != "UCdef" {
		t.Errorf("nameless entry name = %q, want the id", channels[1].Name)
	}
	if channels[1].LookbackDays != domain.DefaultLookbackDays {
		t.Errorf("default lookback = %d, want %d", channels[1].LookbackDays, domain.DefaultLookbackDays)
	}
	if channels[2].LookbackDays != domain.MaxLookbackDays {
		t.Errorf("lookback = %d, want clamped %d", channels[2].LookbackDays, domain.MaxLookbackDays)
	}
	if channels[2].IsActive {
		t.Error("explicitly inactive entry mapped as active")
	}
}

func TestMapper_MapChannelsRejectsMissingID(t *testing.T) {
	config := ChannelsConfig{Channels: []ChannelEntry{{Name: "No ID"}}}
	if _, err := NewMapper().MapChannels(config); err == nil {
		t.Fatal("MapChannels() accepted an entry without an id")
	}
}
