package handlers

import (
	"net/http"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
)

// SessionState returns the playback session snapshot.
func SessionState(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Session.Current())
	}
}

type readyResponse struct {
	SeekTarget float64 `json:"seek_target"`
}

// SessionReady consumes the one-shot seek target. The player calls this
// once it can accept a seek; a repeat call yields 0.
func SessionReady(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, readyResponse{SeekTarget: d.Session.PlayerReady()})
	}
}

type progressRequest struct {
	Position float64 `json:"position"`
	Duration float64 `json:"duration"`
}

// SessionProgress records a playback progress tick.
func SessionProgress(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req progressRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !d.Session.ReportProgress(r.Context(), req.Position, req.Duration) {
			writeError(w, http.StatusConflict, "no playing video or invalid progress report")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SessionRestart clears the current video's saved position and re-arms
// playback from the beginning.
func SessionRestart(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Session.Restart(r.Context()) {
			writeError(w, http.StatusConflict, "no video armed for playback")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
