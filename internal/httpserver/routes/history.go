package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
	"github.com/watchdeck/watchdeck/internal/httpserver/handlers"
	"github.com/watchdeck/watchdeck/internal/httpserver/mw"
)

func init() { Register(registerHistory) }

func registerHistory(r chi.Router, d deps.Deps) {
	g := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	g.Get("/api/v1/history", handlers.HistoryList(d))
	g.Delete("/api/v1/history", handlers.HistoryClear(d))
	g.Delete("/api/v1/history/{id}", handlers.HistoryDelete(d))
}
