package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
)

// FavoritesList returns the starred videos, most recently touched first.
func FavoritesList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Favorites.Entries())
	}
}

type favoriteRequest struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title,omitempty"`
}

// FavoriteAdd stars a video. An unknown title is backfilled asynchronously.
func FavoriteAdd(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req favoriteRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.VideoID == "" {
			writeError(w, http.StatusBadRequest, "video_id is required")
			return
		}
		d.Favorites.Add(r.Context(), req.VideoID, req.Title)
		w.WriteHeader(http.StatusCreated)
	}
}

// FavoriteDelete unstars a video.
func FavoriteDelete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Favorites.Remove(r.Context(), chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// FavoritesClear wipes all favorites.
func FavoritesClear(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Favorites.Clear(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

// FavoritePromote moves an existing favorite to the top of the list. A
// video that is not already starred is not implicitly added.
func FavoritePromote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !d.Favorites.PromoteToTop(r.Context(), id, "") {
			writeError(w, http.StatusNotFound, "video is not a favorite")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
