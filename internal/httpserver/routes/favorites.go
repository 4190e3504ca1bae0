package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
	"github.com/watchdeck/watchdeck/internal/httpserver/handlers"
	"github.com/watchdeck/watchdeck/internal/httpserver/mw"
)

func init() { Register(registerFavorites) }

func registerFavorites(r chi.Router, d deps.Deps) {
	g := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	g.Get("/api/v1/favorites", handlers.FavoritesList(d))
	g.Post("/api/v1/favorites", handlers.FavoriteAdd(d))
	g.Delete("/api/v1/favorites", handlers.FavoritesClear(d))
	g.Delete("/api/v1/favorites/{id}", handlers.FavoriteDelete(d))
	g.Post("/api/v1/favorites/{id}/promote", handlers.FavoritePromote(d))
}
