package handlers

import (
	"net/http"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
	"github.com/watchdeck/watchdeck/internal/logger"
)

// ClipboardLatest returns the most recent video link observed on the
// clipboard, or 204 when nothing has been seen yet.
func ClipboardLatest(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Watcher == nil {
			writeError(w, http.StatusServiceUnavailable, "clipboard watcher disabled")
			return
		}
		obs, ok := d.Watcher.Latest()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, obs)
	}
}

// ClipboardPoll triggers an immediate clipboard poll outside the regular
// cadence, the check-on-foreground analog.
func ClipboardPoll(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ClipboardTrigger == nil {
			writeError(w, http.StatusServiceUnavailable, "clipboard watcher disabled")
			return
		}
		select {
		case d.ClipboardTrigger <- struct{}{}:
			d.Logger.Info("manual clipboard poll triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
		default:
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}
}
