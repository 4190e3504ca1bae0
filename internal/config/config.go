package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Storage    string // "memory" | "redis" | "sqlite"
	SQLitePath string // path to the sqlite database file (storage=sqlite)

	YouTubeAPIKey   string // Data API v3 key (optional, channel features degrade without it)
	ChannelSeedFile string // path to channels.yaml (optional, empty = no seeding)

	ClipboardWatch        bool          // enable the clipboard watcher
	ClipboardPollInterval time.Duration // clipboard poll cadence (default: 1s)

	RefreshInterval time.Duration // channel feed refresh cadence (default: 30m)
	PruneInterval   time.Duration // playback position prune cadence (default: 24h)
	RetentionDays   int           // position retention window in days (default: 30)

	Discovery    bool   // advertise over mDNS on the LAN
	InstanceName string // mDNS instance name

	// Redis (storage=redis)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedCIDRS []string // optional, restrict access to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	RateLimitBurst  int // token bucket capacity per client IP
	RateLimitPerMin int // refill rate per client IP per minute
}

func Load() *Config {
	// Local .env is a convenience for dev; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("WATCHDECK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("WATCHDECK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("WATCHDECK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("WATCHDECK_PRETTY_LOG", true),

		// Storage backend
		Storage:    getenv("WATCHDECK_STORAGE", StorageSQLite),
		SQLitePath: getenv("WATCHDECK_SQLITE_PATH", "watchdeck.db"),

		// YouTube
		YouTubeAPIKey:   getenv("WATCHDECK_YOUTUBE_API_KEY", ""),
		ChannelSeedFile: getenv("WATCHDECK_CHANNEL_SEED_FILE", ""),

		// Clipboard
		ClipboardWatch:        mustBool("WATCHDECK_CLIPBOARD_WATCH", true),
		ClipboardPollInterval: mustDuration("WATCHDECK_CLIPBOARD_POLL_INTERVAL", time.Second),

		// Background work
		RefreshInterval: mustDuration("WATCHDECK_REFRESH_INTERVAL", 30*time.Minute),
		PruneInterval:   mustDuration("WATCHDECK_PRUNE_INTERVAL", 24*time.Hour),
		RetentionDays:   getenvInt("WATCHDECK_RETENTION_DAYS", 30),

		// LAN discovery
		Discovery:    mustBool("WATCHDECK_DISCOVERY", true),
		InstanceName: getenv("WATCHDECK_INSTANCE_NAME", "watchdeck"),

		// Access restrictions
		AllowedCIDRS: parseAllowedIPs(getenv("WATCHDECK_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("WATCHDECK_TRUST_PROXY", false),

		// Rate limiting
		RateLimitBurst:  getenvInt("WATCHDECK_RATE_LIMIT_BURST", 60),
		RateLimitPerMin: getenvInt("WATCHDECK_RATE_LIMIT_PER_MIN", 120),
	}

	switch cfg.Storage {
	case StorageMemory, StorageSQLite:
	case StorageRedis:
		// Redis settings only matter when it is the chosen backend.
		cfg.RedisAddr = requireEnv("WATCHDECK_REDIS_ADDR")
		cfg.RedisUser = getenv("WATCHDECK_REDIS_USERNAME", "default")
		cfg.RedisPasswordRequired = mustBool("WATCHDECK_REDIS_PASSWORD_REQUIRED", true)
		cfg.RedisPassword = getenv("WATCHDECK_REDIS_PASSWORD", "")
		cfg.RedisDB = getenvInt("WATCHDECK_REDIS_DB", 0)
		cfg.RedisDT = mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
		cfg.RedisRT = mustDuration("REDIS_READ_TIMEOUT", 3*time.Second)
		cfg.RedisWT = mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)
		cfg.RedisMaxWait = mustDuration("REDIS_MAX_WAIT", 10*time.Second)
		cfg.RedisPingTimeout = mustDuration("REDIS_PING_TIMEOUT", 5*time.Second)
		cfg.RedisPoolSize = getenvInt("REDIS_POOL_SIZE", 10)
		cfg.RedisConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second)
		cfg.RedisRetryInterval = mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second)
		cfg.RedisWarnThreshold = getenvInt("REDIS_WARN_THRESHOLD", 3)

		if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
			panic("❌ FATAL: WATCHDECK_REDIS_PASSWORD is required when WATCHDECK_REDIS_PASSWORD_REQUIRED=true")
		}
	default:
		panic(fmt.Sprintf("❌ FATAL: Unknown storage backend %q (expected memory, redis or sqlite)", cfg.Storage))
	}

	if cfg.RetentionDays < 1 {
		panic("❌ FATAL: WATCHDECK_RETENTION_DAYS must be at least 1")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfg.YouTubeAPIKey != "" {
			cfgCopy.YouTubeAPIKey = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
