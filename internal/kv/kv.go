// Package kv defines the key-value persistence contract shared by all
// stores: each store serializes its whole in-memory state to one blob under
// a fixed key. An absent key means empty initial state; callers treat decode
// failures the same way.
package kv

import "context"

// Fixed blob keys, one per store.
const (
	KeyPositions     = "watchdeck:positions"
	KeyHistory       = "watchdeck:history"
	KeyFavorites     = "watchdeck:favorites"
	KeyChannels      = "watchdeck:channels"
	KeyChannelVideos = "watchdeck:channelvideos"
)

// Store is the backend-agnostic blob storage interface.
// Swap implementations (redis, sqlite, memory) without touching the stores.
type Store interface {
	// Save overwrites the blob stored under key.
	Save(ctx context.Context, key string, blob []byte) error

	// Load returns the blob stored under key. found is false when the key
	// has never been written (not an error).
	Load(ctx context.Context, key string) (blob []byte, found bool, err error)

	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
