package clipboard

import (
	"context"
	"sync"
	"time"

	"github.com/watchdeck/watchdeck/internal/domain"
	"github.com/watchdeck/watchdeck/internal/logger"
)

// Observation is a video id seen on the clipboard.
type Observation struct {
	VideoID    string    `json:"video_id"`
	ObservedAt time.Time `json:"observed_at"`
}

// Watcher polls the pasteboard for YouTube links. Two layers of
// short-circuiting keep the poll cheap: the platform change counter when
// available, then a comparison against the last raw string read.
type Watcher struct {
	pasteboard    Pasteboard
	logger        logger.Logger
	interval      time.Duration
	sink          func(Observation)
	stopCh        chan struct{}
	manualTrigger chan struct{}

	mu          sync.RWMutex
	lastCount   int64
	hasCount    bool
	lastRaw     string
	hasRaw      bool
	latest      Observation
	hasLatest   bool
	useCounter  bool
	counterInit bool
}

// NewWatcher creates a watcher. sink may be nil; the latest observation is
// always retained and queryable either way.
func NewWatcher(
	pb Pasteboard,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
	sink func(Observation),
) *Watcher {
	return &Watcher{
		pasteboard:    pb,
		logger:        log,
		interval:      interval,
		sink:          sink,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
		useCounter:    true,
	}
}

// Start polls immediately, then on every tick.
func (w *Watcher) Start(ctx context.Context) error {
	w.Poll(ctx)

	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.Poll(ctx)
			case <-w.manualTrigger:
				w.logger.Debug("manual clipboard poll triggered")
				w.Poll(ctx)
			case <-w.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
}

// Poll reads the clipboard once. It returns the video id it accepted, or ""
// when the poll was short-circuited or no video link was present.
func (w *Watcher) Poll(ctx context.Context) string {
	if w.changeCountUnchanged() {
		return ""
	}

	raw, err := w.pasteboard.Text()
	if err != nil {
		w.logger.Debug("clipboard read failed", logger.Error(err))
		return ""
	}

	w.mu.Lock()
	if w.hasRaw && raw == w.lastRaw {
		w.mu.Unlock()
		return ""
	}
	w.lastRaw = raw
	w.hasRaw = true
	w.mu.Unlock()

	id := domain.ExtractVideoID(raw)
	if id == "" {
		return ""
	}

	obs := Observation{VideoID: id, ObservedAt: time.Now()}
	w.mu.Lock()
	w.latest = obs
	w.hasLatest = true
	w.mu.Unlock()

	w.logger.Info("video link detected on clipboard",
		logger.String("video_id", id))
	if w.sink != nil {
		w.sink(obs)
	}
	return id
}

// Latest returns the most recent observation, if any.
func (w *Watcher) Latest() (Observation, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest, w.hasLatest
}

// changeCountUnchanged consults the platform change counter. On the first
// call the counter is primed and the poll proceeds; once the pasteboard
// reports ErrChangeCountUnsupported the counter is never asked again.
func (w *Watcher) changeCountUnchanged() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.useCounter {
		return false
	}
	count, err := w.pasteboard.ChangeCount()
	if err != nil {
		w.useCounter = false
		if err != ErrChangeCountUnsupported {
			w.logger.Debug("clipboard change count failed", logger.Error(err))
		}
		return false
	}
	if w.counterInit && w.hasCount && count == w.lastCount {
		return true
	}
	w.lastCount = count
	w.hasCount = true
	w.counterInit = true
	return false
}
