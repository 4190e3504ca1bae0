package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
	"github.com/watchdeck/watchdeck/internal/httpserver/handlers"
	"github.com/watchdeck/watchdeck/internal/httpserver/mw"
)

func init() { Register(registerIntake) }

func registerIntake(r chi.Router, d deps.Deps) {
	g := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	g.Post("/api/v1/intake", handlers.Intake(d))
	g.Get("/api/v1/intake/active", handlers.IntakeActive(d))
	g.Delete("/api/v1/intake/active", handlers.IntakeClear(d))
}
