// Package intake funnels every "watch this video" trigger through one
// place. Clipboard hits, history taps, favorite taps, and channel-feed taps
// all call SetActive, so the history/favorites side effects happen exactly
// once per activation regardless of origin.
package intake

import (
	"context"
	"sync"

	"github.com/watchdeck/watchdeck/internal/logger"
	"github.com/watchdeck/watchdeck/internal/store"
)

// SessionStarter is the slice of the session layer the controller needs.
type SessionStarter interface {
	Begin(ctx context.Context, videoID string, startFromBeginning bool)
}

// Controller owns the active video id.
type Controller struct {
	mu     sync.RWMutex
	active string

	history   *store.HistoryLedger
	favorites *store.FavoritesLedger
	session   SessionStarter
	logger    logger.Logger
}

func NewController(
	history *store.HistoryLedger,
	favorites *store.FavoritesLedger,
	session SessionStarter,
	log logger.Logger,
) *Controller {
	return &Controller{
		history:   history,
		favorites: favorites,
		session:   session,
		logger:    log,
	}
}

// SetActive makes id the active video. Setting the already active id is a
// no-op and returns false. Otherwise the video is recorded in history, an
// existing favorite is promoted to the top (never implicitly favorited),
// and the session is armed.
func (c *Controller) SetActive(ctx context.Context, id string) bool {
	if id == "" {
		return false
	}

	c.mu.Lock()
	if c.active == id {
		c.mu.Unlock()
		return false
	}
	c.active = id
	c.mu.Unlock()

	c.history.Add(ctx, id)
	c.favorites.PromoteToTop(ctx, id, "")
	if c.session != nil {
		c.session.Begin(ctx, id, false)
	}

	c.logger.Info("active video changed", logger.String("video_id", id))
	return true
}

// Active returns the active video id, or "".
func (c *Controller) Active() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// ClearActive drops the active video without side effects.
func (c *Controller) ClearActive() {
	c.mu.Lock()
	c.active = ""
	c.mu.Unlock()
}
