package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
	"github.com/watchdeck/watchdeck/internal/logger"
)

// PositionsList returns every stored playback position.
func PositionsList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Positions.All())
	}
}

// PositionGet returns the stored position for one video.
func PositionGet(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		pos, ok := d.Positions.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "no stored position for video")
			return
		}
		writeJSON(w, http.StatusOK, pos)
	}
}

// PositionDelete clears the stored position for one video.
func PositionDelete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Positions.Clear(r.Context(), chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// PositionsPrune triggers an immediate retention prune.
func PositionsPrune(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.PruneTrigger <- struct{}{}:
			d.Logger.Info("manual position prune triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
		default:
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}
}
