package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
	"github.com/watchdeck/watchdeck/internal/httpserver/handlers"
	"github.com/watchdeck/watchdeck/internal/httpserver/mw"
)

func init() { Register(registerChannels) }

func registerChannels(r chi.Router, d deps.Deps) {
	g := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	g.Get("/api/v1/channels", handlers.ChannelsList(d))
	g.Get("/api/v1/channels/search", handlers.ChannelsSearch(d))
	g.Post("/api/v1/channels", handlers.ChannelSubscribe(d))
	g.Post("/api/v1/channels/refresh", handlers.ChannelsRefresh(d))
	g.Get("/api/v1/channels/videos/unwatched", handlers.ChannelsUnwatched(d))
	g.Post("/api/v1/channels/videos/{videoID}/watched", handlers.ChannelVideoWatched(d))
	g.Delete("/api/v1/channels/{id}", handlers.ChannelUnsubscribe(d))
	g.Post("/api/v1/channels/{id}/toggle", handlers.ChannelToggle(d))
	g.Put("/api/v1/channels/{id}/lookback", handlers.ChannelSetLookback(d))
	g.Get("/api/v1/channels/{id}/videos", handlers.ChannelVideos(d))
}
