package handlers

import (
	"net/http"

	"github.com/watchdeck/watchdeck/internal/domain"
	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
)

type intakeRequest struct {
	URL     string `json:"url,omitempty"`
	VideoID string `json:"video_id,omitempty"`
}

type intakeResponse struct {
	VideoID   string `json:"video_id"`
	Activated bool   `json:"activated"`
}

// Intake activates a video from either a raw URL or an explicit video id.
// All watch triggers funnel through this endpoint.
func Intake(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req intakeRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		id := req.VideoID
		if id == "" {
			id = domain.ExtractVideoID(req.URL)
		}
		if id == "" {
			writeError(w, http.StatusBadRequest, "no video id or recognizable video url")
			return
		}

		activated := d.Intake.SetActive(r.Context(), id)
		writeJSON(w, http.StatusOK, intakeResponse{VideoID: id, Activated: activated})
	}
}

type activeResponse struct {
	VideoID string `json:"video_id,omitempty"`
}

// IntakeActive returns the currently active video id, empty when idle.
func IntakeActive(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, activeResponse{VideoID: d.Intake.Active()})
	}
}

// IntakeClear deactivates the current video and stops the session.
func IntakeClear(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Intake.ClearActive()
		d.Session.Stop()
		w.WriteHeader(http.StatusNoContent)
	}
}
