package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
	"github.com/watchdeck/watchdeck/internal/httpserver/handlers"
	"github.com/watchdeck/watchdeck/internal/httpserver/mw"
)

func init() { Register(registerSession) }

func registerSession(r chi.Router, d deps.Deps) {
	g := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	g.Get("/api/v1/session", handlers.SessionState(d))
	g.Post("/api/v1/session/ready", handlers.SessionReady(d))
	g.Post("/api/v1/session/progress", handlers.SessionProgress(d))
	g.Post("/api/v1/session/restart", handlers.SessionRestart(d))
}
