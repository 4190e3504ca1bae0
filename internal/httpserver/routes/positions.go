package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
	"github.com/watchdeck/watchdeck/internal/httpserver/handlers"
	"github.com/watchdeck/watchdeck/internal/httpserver/mw"
)

func init() { Register(registerPositions) }

func registerPositions(r chi.Router, d deps.Deps) {
	g := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	g.Get("/api/v1/positions", handlers.PositionsList(d))
	g.Post("/api/v1/positions/prune", handlers.PositionsPrune(d))
	g.Get("/api/v1/positions/{id}", handlers.PositionGet(d))
	g.Delete("/api/v1/positions/{id}", handlers.PositionDelete(d))
}
