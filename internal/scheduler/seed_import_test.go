package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/watchdeck/watchdeck/internal/domain"
	"github.com/watchdeck/watchdeck/internal/kv"
	"github.com/watchdeck/watchdeck/internal/logger"
	"github.com/watchdeck/watchdeck/internal/store"
)

func TestSeedImporter_ImportAddsOnlyNewChannels(t *testing.T) {
	log := logger.New("error", false)
	channels := store.NewChannelStore(kv.NewMemoryStore(), log)
	ctx := context.Background()

	// Already subscribed with a custom lookback the seed must not reset.
	channels.Add(ctx, domain.Channel{ID: "UCexisting", Name: "Existing", LookbackDays: 21, IsActive: true})

	path := filepath.Join(t.TempDir(), "channels.yaml")
	seed := `channels:
  - id: UCexisting
    lookback_days: 3
  - id: UCnew
    name: Fresh Channel
`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := NewSeedImporter(path, channels, log).Import(ctx); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if got := len(channels.Channels()); got != 2 {
		t.Fatalf("channel count = %d, want 2", got)
	}
	existing, _ := channels.Get("UCexisting")
	if existing.LookbackDays != 21 {
		t.Errorf("existing lookback = %d, want untouched 21", existing.LookbackDays)
	}
	fresh, ok := channels.Get("UCnew")
	if !ok || fresh.Name != "Fresh Channel" {
		t.Errorf("seeded channel = %+v, %v", fresh, ok)
	}
}

func TestSeedImporter_MissingFileIsAnError(t *testing.T) {
	log := logger.New("error", false)
	channels := store.NewChannelStore(kv.NewMemoryStore(), log)

	err := NewSeedImporter(filepath.Join(t.TempDir(), "absent.yaml"), channels, log).Import(context.Background())
	if err == nil {
		t.Fatal("Import() succeeded for a missing file")
	}
}
