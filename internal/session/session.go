// Package session holds the playback reconciliation state machine. The
// player on the other side of the API is an embedded web view; it reports
// readiness and progress, and this package decides where playback resumes.
package session

import (
	"context"
	"sync"

	"github.com/watchdeck/watchdeck/internal/logger"
	"github.com/watchdeck/watchdeck/internal/store"
)

// State is the playback phase.
type State string

const (
	// StateIdle means nothing is armed for playback.
	StateIdle State = "idle"
	// StatePending means a video is armed and the seek target is resolved,
	// waiting for the player to report ready.
	StatePending State = "pending"
	// StatePlaying means the player consumed the seek target.
	StatePlaying State = "playing"
)

// Snapshot is the externally visible session state.
type Snapshot struct {
	State      State   `json:"state"`
	VideoID    string  `json:"video_id,omitempty"`
	SeekTarget float64 `json:"seek_target"`
}

// Session reconciles playback state between the stores and the player.
type Session struct {
	mu         sync.Mutex
	state      State
	videoID    string
	seekTarget float64

	positions *store.PositionStore
	logger    logger.Logger
}

func New(positions *store.PositionStore, log logger.Logger) *Session {
	return &Session{
		state:     StateIdle,
		positions: positions,
		logger:    log,
	}
}

// Begin arms a video for playback. The resume target comes from the
// position store unless startFromBeginning is set or no position is stored.
// Beginning while pending or playing replaces the armed video.
func (s *Session) Begin(ctx context.Context, videoID string, startFromBeginning bool) {
	target := 0.0
	if !startFromBeginning {
		if pos, ok := s.positions.Get(videoID); ok {
			target = pos.Position
		}
	}

	s.mu.Lock()
	s.state = StatePending
	s.videoID = videoID
	s.seekTarget = target
	s.mu.Unlock()

	s.logger.Info("playback armed",
		logger.String("video_id", videoID),
		logger.Float64("seek_target", target))
}

// PlayerReady consumes the one-shot seek target and moves the session to
// playing. A ready event with nothing armed, or a repeated ready event,
// yields 0.
func (s *Session) PlayerReady() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePending {
		return 0
	}
	target := s.seekTarget
	s.state = StatePlaying
	s.seekTarget = 0
	return target
}

// ReportProgress forwards a progress tick for the playing video to the
// position store. Returns false when no video is playing or the tick was
// rejected as invalid.
func (s *Session) ReportProgress(ctx context.Context, position, duration float64) bool {
	s.mu.Lock()
	id := s.videoID
	playing := s.state == StatePlaying
	s.mu.Unlock()

	if !playing || id == "" {
		return false
	}
	return s.positions.Save(ctx, id, position, duration)
}

// Restart clears the stored position for the current video and re-arms
// playback at 0.
func (s *Session) Restart(ctx context.Context) bool {
	s.mu.Lock()
	id := s.videoID
	s.mu.Unlock()
	if id == "" {
		return false
	}

	s.positions.Clear(ctx, id)

	s.mu.Lock()
	s.state = StatePending
	s.seekTarget = 0
	s.mu.Unlock()

	s.logger.Info("playback restarted from beginning",
		logger.String("video_id", id))
	return true
}

// Stop returns the session to idle without touching stored positions.
func (s *Session) Stop() {
	s.mu.Lock()
	s.state = StateIdle
	s.videoID = ""
	s.seekTarget = 0
	s.mu.Unlock()
}

// Current returns a snapshot of the session.
func (s *Session) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:      s.state,
		VideoID:    s.videoID,
		SeekTarget: s.seekTarget,
	}
}
