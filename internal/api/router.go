package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the handler's endpoints
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/metadata", h.GetMetadata)
		r.Get("/terminals/{bus}", h.ListTerminals)
		r.Get("/terminals/{bus}/{slug}", h.GetTerminal)
		r.Get("/routes/{bus}/{routeSlug}", h.GetRoute)
		r.Get("/airport", h.GetAirportBuses)
		r.Get("/airport/{busNumber}", h.GetAirportBus)
	})

	return r
}
