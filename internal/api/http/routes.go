package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"arkivscope/internal/api/http/mw"
)

// BuildRouter wires the API handlers into a chi router.
func BuildRouter(api *API, logMW *mw.LoggingMiddleware, corsMW *mw.CORSMiddleware) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	if logMW != nil {
		r.Use(logMW.Handler)
	}
	if corsMW != nil {
		r.Use(corsMW.Handler)
	}

	r.Get("/healthz", api.Healthz)

	r.Route("/api", func(apiR chi.Router) {
		apiR.Get("/events", api.Events)
		apiR.Post("/query", api.Query)
		apiR.Get("/stats", api.Stats)
		apiR.Route("/analytics", func(an chi.Router) {
			an.Get("/volume", api.Volume)
			an.Get("/distribution", api.Distribution)
		})
	})

	return r
}
