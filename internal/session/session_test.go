package session

import (
	"context"
	"testing"

	"github.com/watchdeck/watchdeck/internal/kv"
	"github.com/watchdeck/watchdeck/internal/logger"
	"github.com/watchdeck/watchdeck/internal/store"
)

func newTestSession() (*Session, *store.PositionStore) {
	log := logger.New("error", false)
	positions := store.NewPositionStore(kv.NewMemoryStore(), log)
	return New(positions, log), positions
}

func TestSession_BeginResolvesResumeTarget(t *testing.T) {
	s, positions := newTestSession()
	ctx := context.Background()
	positions.Save(ctx, "abc", 42.5, 300)

	s.Begin(ctx, "abc", false)

	snap := s.Current()
	if snap.State != StatePending {
		t.Errorf("state = %s, want pending", snap.State)
	}
	if snap.SeekTarget != 42.5 {
		t.Errorf("seek target = %v, want 42.5", snap.SeekTarget)
	}
}

func TestSession_BeginFromBeginningIgnoresStoredPosition(t *testing.T) {
	s, positions := newTestSession()
	ctx := context.Background()
	positions.Save(ctx, "abc", 42.5, 300)

	s.Begin(ctx, "abc", true)

	if got := s.Current().SeekTarget; got != 0 {
		t.Errorf("seek target = %v, want 0", got)
	}
}

func TestSession_PlayerReadyIsOneShot(t *testing.T) {
	s, positions := newTestSession()
	ctx := context.Background()
	positions.Save(ctx, "abc", 42.5, 300)
	s.Begin(ctx, "abc", false)

	if got := s.PlayerReady(); got != 42.5 {
		t.Fatalf("first PlayerReady() = %v, want 42.5", got)
	}
	if got := s.PlayerReady(); got != 0 {
		t.Errorf("second PlayerReady() = %v, want 0", got)
	}
	if got := s.Current().State; got != StatePlaying {
		t.Errorf("state = %s, want playing", got)
	}
}

func TestSession_PlayerReadyWhileIdleYieldsZero(t *testing.T) {
	s, _ := newTestSession()
	if got := s.PlayerReady(); got != 0 {
		t.Errorf("PlayerReady() while idle = %v, want 0", got)
	}
	if got := s.Current().State; got != StateIdle {
		t.Errorf("state = %s, want idle", got)
	}
}

func TestSession_ReportProgressSavesWhilePlaying(t *testing.T) {
	s, positions := newTestSession()
	ctx := context.Background()

	s.Begin(ctx, "abc", false)
	if s.ReportProgress(ctx, 10, 300) {
		t.Error("ReportProgress() accepted a tick before the player was ready")
	}

	s.PlayerReady()
	if !s.ReportProgress(ctx, 10, 300) {
		t.Fatal("ReportProgress() rejected a valid tick while playing")
	}
	if pos, ok := positions.Get("abc"); !ok || pos.Position != 10 {
		t.Errorf("stored position = %v, %v; want 10", pos, ok)
	}

	if s.ReportProgress(ctx, -5, 300) {
		t.Error("ReportProgress() accepted a negative position")
	}
}

func TestSession_RestartClearsPositionAndRearms(t *testing.T) {
	s, positions := newTestSession()
	ctx := context.Background()
	positions.Save(ctx, "abc", 42.5, 300)
	s.Begin(ctx, "abc", false)
	s.PlayerReady()

	if !s.Restart(ctx) {
		t.Fatal("Restart() = false with a video armed")
	}
	if _, ok := positions.Get("abc"); ok {
		t.Error("Restart() did not clear the stored position")
	}
	snap := s.Current()
	if snap.State != StatePending || snap.SeekTarget != 0 {
		t.Errorf("snapshot = %+v, want pending at 0", snap)
	}
	if got := s.PlayerReady(); got != 0 {
		t.Errorf("PlayerReady() after restart = %v, want 0", got)
	}
}

func TestSession_RestartWithNothingArmed(t *testing.T) {
	s, _ := newTestSession()
	if s.Restart(context.Background()) {
		t.Error("Restart() = true with nothing armed")
	}
}

func TestSession_StopReturnsToIdle(t *testing.T) {
	s, _ := newTestSession()
	ctx := context.Background()
	s.Begin(ctx, "abc", false)
	s.Stop()

	snap := s.Current()
	if snap.State != StateIdle || snap.VideoID != "" {
		t.Errorf("snapshot after Stop = %+v, want idle", snap)
	}
}
