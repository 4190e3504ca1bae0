package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
)

// HistoryList returns the watch history, most recent first.
func HistoryList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.History.Entries())
	}
}

// HistoryDelete removes one entry by video id.
func HistoryDelete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.History.Remove(r.Context(), chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// HistoryClear wipes the whole history.
func HistoryClear(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.History.Clear(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}
