// Package errlog is the app-wide error funnel. Subsystems report typed
// errors here instead of surfacing them directly; the HTTP layer exposes
// the current error and a bounded history for the UI to render.
package errlog

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/watchdeck/watchdeck/internal/logger"
)

// Kind classifies where an error came from.
type Kind string

const (
	KindNetwork   Kind = "network"
	KindVideoLoad Kind = "video_load"
	KindData      Kind = "data"
	KindClipboard Kind = "clipboard"
	KindChannel   Kind = "channel"
	KindPlayback  Kind = "playback"
	KindUnknown   Kind = "unknown"
)

// Severity is the display tier for a reported error.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// SeverityFor maps kinds to their display tier. Clipboard problems are
// ambient noise; data and playback problems deserve attention.
func SeverityFor(kind Kind) Severity {
	switch kind {
	case KindClipboard:
		return SeverityInfo
	case KindNetwork, KindChannel:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// HistoryCap bounds the retained history; the oldest entry is evicted.
const HistoryCap = 50

// Entry is one reported error.
type Entry struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	ReportedAt time.Time `json:"reported_at"`
}

// Funnel holds the single current-error slot and the bounded history.
type Funnel struct {
	mu      sync.RWMutex
	current *Entry
	history []Entry
	logger  logger.Logger
}

func New(log logger.Logger) *Funnel {
	return &Funnel{logger: log}
}

// Report records an error. It fills the current slot, overwriting whatever
// was there, and prepends the history.
func (f *Funnel) Report(kind Kind, message string, err error) Entry {
	entry := Entry{
		ID:         uuid.New().String(),
		Kind:       kind,
		Severity:   SeverityFor(kind),
		Message:    message,
		ReportedAt: time.Now(),
	}
	if err != nil {
		entry.Detail = err.Error()
	}

	f.mu.Lock()
	f.current = &entry
	f.history = append([]Entry{entry}, f.history...)
	if len(f.history) > HistoryCap {
		f.history = f.history[:HistoryCap]
	}
	f.mu.Unlock()

	f.logger.Warn("error reported",
		logger.String("kind", string(kind)),
		logger.String("message", message),
		logger.Error(err))
	return entry
}

// Current returns the occupied current-error slot, if any.
func (f *Funnel) Current() (Entry, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.current == nil {
		return Entry{}, false
	}
	return *f.current, true
}

// ClearCurrent empties the slot. History is untouched.
func (f *Funnel) ClearCurrent() {
	f.mu.Lock()
	f.current = nil
	f.mu.Unlock()
}

// History returns a snapshot, newest first.
func (f *Funnel) History() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Entry, len(f.history))
	copy(out, f.history)
	return out
}

// ClearHistory drops all retained entries and the current slot.
func (f *Funnel) ClearHistory() {
	f.mu.Lock()
	f.current = nil
	f.history = nil
	f.mu.Unlock()
}
