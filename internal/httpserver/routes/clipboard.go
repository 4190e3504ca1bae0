package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
	"github.com/watchdeck/watchdeck/internal/httpserver/handlers"
	"github.com/watchdeck/watchdeck/internal/httpserver/mw"
)

func init() { Register(registerClipboard) }

func registerClipboard(r chi.Router, d deps.Deps) {
	g := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	g.Get("/api/v1/clipboard/latest", handlers.ClipboardLatest(d))
	g.Post("/api/v1/clipboard/poll", handlers.ClipboardPoll(d))
}
