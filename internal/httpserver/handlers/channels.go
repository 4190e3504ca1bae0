package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/watchdeck/watchdeck/internal/domain"
	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
	"github.com/watchdeck/watchdeck/internal/logger"
	"github.com/watchdeck/watchdeck/internal/youtube"
)

// ChannelsList returns all subscribed channels.
func ChannelsList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Channels.Channels())
	}
}

// ChannelsSearch proxies a free-text channel search to the Data API.
func ChannelsSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.YouTube == nil {
			writeError(w, http.StatusServiceUnavailable, "no YouTube API key configured")
			return
		}
		query := r.URL.Query().Get("q")
		if query == "" {
			writeError(w, http.StatusBadRequest, "q is required")
			return
		}

		channels, err := d.YouTube.SearchChannels(r.Context(), query, 25)
		if err != nil {
			writeYouTubeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, channels)
	}
}

type subscribeRequest struct {
	ChannelID string `json:"channel_id,omitempty"`
	URL       string `json:"url,omitempty"`
}

// ChannelSubscribe subscribes to a channel by id or by any channel URL
// form. The channel's metadata is resolved through the Data API.
func ChannelSubscribe(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.YouTube == nil {
			writeError(w, http.StatusServiceUnavailable, "no YouTube API key configured")
			return
		}
		var req subscribeRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.ChannelID == "" && req.URL == "" {
			writeError(w, http.StatusBadRequest, "channel_id or url is required")
			return
		}

		resolved, err := resolveChannel(r, d, req)
		if err != nil {
			writeYouTubeError(w, err)
			return
		}

		if !d.Channels.Add(r.Context(), resolved) {
			writeError(w, http.StatusConflict, "already subscribed")
			return
		}
		d.Logger.Info("channel subscribed",
			logger.String("channel_id", resolved.ID),
			logger.String("channel", resolved.Name))
		writeJSON(w, http.StatusCreated, resolved)
	}
}

// ChannelUnsubscribe removes a subscription and its fetched videos.
func ChannelUnsubscribe(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Channels.Remove(r.Context(), chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// ChannelToggle flips a channel's active flag.
func ChannelToggle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Channels.ToggleActive(r.Context(), chi.URLParam(r, "id")) {
			writeError(w, http.StatusNotFound, "channel not subscribed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type lookbackRequest struct {
	Days int `json:"days"`
}

// ChannelSetLookback updates a channel's trailing fetch window.
func ChannelSetLookback(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req lookbackRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !d.Channels.SetLookback(r.Context(), chi.URLParam(r, "id"), req.Days) {
			writeError(w, http.StatusNotFound, "channel not subscribed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ChannelVideos returns the fetched videos of one channel.
func ChannelVideos(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := d.Channels.Get(id); !ok {
			writeError(w, http.StatusNotFound, "channel not subscribed")
			return
		}
		writeJSON(w, http.StatusOK, d.Channels.Videos(id))
	}
}

// ChannelsUnwatched returns unwatched videos across all channels, newest
// first. An optional ?limit=N caps the result.
func ChannelsUnwatched(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videos := d.Channels.AllUnwatched()
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if limit, err := strconv.Atoi(raw); err == nil && limit >= 0 && limit < len(videos) {
				videos = videos[:limit]
			}
		}
		writeJSON(w, http.StatusOK, videos)
	}
}

// ChannelVideoWatched flags a channel-feed video as watched.
func ChannelVideoWatched(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Channels.MarkWatched(r.Context(), chi.URLParam(r, "videoID"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// ChannelsRefresh triggers an immediate feed refresh for all active
// channels.
func ChannelsRefresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.RefreshTrigger == nil {
			writeError(w, http.StatusServiceUnavailable, "channel refresher disabled")
			return
		}
		select {
		case d.RefreshTrigger <- struct{}{}:
			d.Logger.Info("manual channel refresh triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
		default:
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}
}

func resolveChannel(r *http.Request, d deps.Deps, req subscribeRequest) (domain.Channel, error) {
	if req.ChannelID != "" {
		return d.YouTube.GetChannelByID(r.Context(), req.ChannelID)
	}
	return d.YouTube.ResolveChannelURL(r.Context(), req.URL)
}

func writeYouTubeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, youtube.ErrNotFound):
		writeError(w, http.StatusNotFound, "channel not found")
	case errors.Is(err, youtube.ErrQuotaExceeded):
		writeError(w, http.StatusTooManyRequests, "YouTube API quota exceeded")
	case errors.Is(err, youtube.ErrAuthFailed), errors.Is(err, youtube.ErrNoAPIKey):
		writeError(w, http.StatusBadGateway, "YouTube API authentication failed")
	default:
		writeError(w, http.StatusBadGateway, "YouTube API request failed")
	}
}
