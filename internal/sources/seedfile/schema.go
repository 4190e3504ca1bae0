package seedfile

// ChannelsConfig is the root of the channels.yaml seed file.
type ChannelsConfig struct {
	Channels []ChannelEntry `yaml:"channels"`
}

// ChannelEntry is one seeded subscription. ID is required; everything else
// is optional and filled from the API on first refresh.
type ChannelEntry struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Handle       string `yaml:"handle"`
	LookbackDays int    `yaml:"lookback_days"`
	Active       *bool  `yaml:"active"`
}
