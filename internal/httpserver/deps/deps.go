package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/watchdeck/watchdeck/internal/clipboard"
	"github.com/watchdeck/watchdeck/internal/errlog"
	"github.com/watchdeck/watchdeck/internal/intake"
	"github.com/watchdeck/watchdeck/internal/logger"
	"github.com/watchdeck/watchdeck/internal/session"
	"github.com/watchdeck/watchdeck/internal/store"
	"github.com/watchdeck/watchdeck/internal/youtube"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	AllowedCIDRS []string // IPs/CIDRs allowed to access the API
	TrustProxy   bool     // true if running behind a trusted reverse proxy

	Positions *store.PositionStore
	History   *store.HistoryLedger
	Favorites *store.FavoritesLedger
	Channels  *store.ChannelStore
	Intake    *intake.Controller
	Session   *session.Session
	Errors    *errlog.Funnel

	Watcher *clipboard.Watcher // nil when the clipboard watcher is disabled
	YouTube *youtube.Client    // nil when no API key is configured

	Storage     string        // active storage backend name
	RedisClient *redis.Client // nil unless storage=redis

	PruneTrigger     chan struct{} // manual playback position prune
	RefreshTrigger   chan struct{} // manual channel feed refresh
	ClipboardTrigger chan struct{} // manual clipboard poll (nil if watcher disabled)
}
