package app

import (
	"context"
	"net/http"
	"time"

	authhandlers "github.com/Black-And-White-Club/competitions/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/competitions/app/observability"
	"github.com/Black-And-White-Club/competitions/app/shared/outcome"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Router builds the root HTTP handler.
func (app *App) Router() http.Handler {
	var ping func(context.Context) error
	if app.DB != nil {
		ping = app.DB.PingContext
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	metricsEnabled := app.Obs != nil && app.Obs.Registry != nil
	if metricsEnabled {
		r.Use(observability.HTTPMetricsMiddleware(app.Obs.Registry))
	}
	r.Use(authhandlers.RateLimitMiddleware(authhandlers.NewIPRateLimiter(rate.Limit(app.Config.HTTP.RateLimit), app.Config.HTTP.RateBurst)))
	r.Use(authhandlers.CORSMiddleware(app.Config.HTTP.AllowedOrigins))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(app.Obs.Registry, promhttp.HandlerOpts{}))
	}
	r.Get("/healthz", healthHandler(ping))

	m := app.Modules
	r.Route("/competitions", func(r chi.Router) {
		r.Use(m.Auth.Authenticate())
		m.Competition.RegisterRoutes(r, m.Auth)
		m.Participant.RegisterRoutes(r, m.Auth)
	})
	return r
}

func healthHandler(ping func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				outcome.JSON(w, http.StatusServiceUnavailable, outcome.Envelope{DatabaseError: true, Error: "database unavailable"})
				return
			}
		}
		outcome.JSON(w, http.StatusOK, outcome.Envelope{Success: true})
	}
}
