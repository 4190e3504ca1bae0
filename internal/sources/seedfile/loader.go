// Package seedfile loads the optional channels.yaml seed file, used to
// pre-subscribe a fresh install to a set of channels.
package seedfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of channels.yaml
type Loader struct {
	filePath string
}

// NewLoader creates a new seed file loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the channels.yaml file.
func (l *Loader) Load() (ChannelsConfig, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return ChannelsConfig{}, fmt.Errorf("failed to read channels file: %w", err)
	}

	var config ChannelsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return ChannelsConfig{}, fmt.Errorf("failed to parse channels yaml: %w", err)
	}

	return config, nil
}
