package handlers

import (
	"net/http"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
)

// ErrorCurrent returns the current error, or 204 when the slot is empty.
func ErrorCurrent(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, ok := d.Errors.Current()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

// ErrorDismiss empties the current-error slot.
func ErrorDismiss(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Errors.ClearCurrent()
		w.WriteHeader(http.StatusNoContent)
	}
}

// ErrorHistory returns the retained error history, newest first.
func ErrorHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Errors.History())
	}
}

// ErrorHistoryClear wipes the retained history.
func ErrorHistoryClear(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Errors.ClearHistory()
		w.WriteHeader(http.StatusNoContent)
	}
}
