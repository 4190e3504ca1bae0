package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
)

type componentStatus struct {
	OK     bool   `json:"ok"`
	Mode   string `json:"mode,omitempty"`
	Count  *int   `json:"count,omitempty"`
	Impact string `json:"impact,omitempty"`
	Error  string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		positions := d.Positions.Len()
		history := d.History.Len()
		favorites := d.Favorites.Len()
		channels := len(d.Channels.Channels())

		components := map[string]componentStatus{
			"storage":   checkStorage(d),
			"youtube":   checkYouTube(d),
			"clipboard": checkClipboard(d),
			"positions": {OK: true, Count: &positions},
			"history":   {OK: true, Count: &history},
			"favorites": {OK: true, Count: &favorites},
			"channels":  {OK: true, Count: &channels},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

// determineMode summarizes component health. Storage trouble is degraded,
// never critical: memory stays authoritative and only durability suffers.
func determineMode(components map[string]componentStatus) string {
	for _, c := range components {
		if !c.OK {
			return "degraded"
		}
	}
	return "full"
}

func checkStorage(d deps.Deps) componentStatus {
	status := componentStatus{OK: true, Mode: d.Storage}

	if d.RedisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := d.RedisClient.Ping(ctx).Err(); err != nil {
			status.OK = false
			status.Impact = "persistence-unavailable"
			status.Error = err.Error()
		}
	}
	return status
}

func checkYouTube(d deps.Deps) componentStatus {
	if d.YouTube == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "channel-subscriptions-unavailable",
			Error:  "no API key configured",
		}
	}
	return componentStatus{OK: true, Mode: "api-key"}
}

func checkClipboard(d deps.Deps) componentStatus {
	if d.Watcher == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "clipboard-intake-unavailable",
		}
	}
	return componentStatus{OK: true, Mode: "polling"}
}
