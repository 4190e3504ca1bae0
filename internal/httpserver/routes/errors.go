package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
	"github.com/watchdeck/watchdeck/internal/httpserver/handlers"
	"github.com/watchdeck/watchdeck/internal/httpserver/mw"
)

func init() { Register(registerErrors) }

func registerErrors(r chi.Router, d deps.Deps) {
	g := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	g.Get("/api/v1/errors/current", handlers.ErrorCurrent(d))
	g.Delete("/api/v1/errors/current", handlers.ErrorDismiss(d))
	g.Get("/api/v1/errors/history", handlers.ErrorHistory(d))
	g.Delete("/api/v1/errors/history", handlers.ErrorHistoryClear(d))
}
