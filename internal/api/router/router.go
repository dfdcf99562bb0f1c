// Package router assembles the platform's HTTP surface.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/resvio/bot-platform/internal/http/middleware"
	"github.com/resvio/bot-platform/internal/messaging"
	"github.com/resvio/bot-platform/internal/tenant"
	"github.com/resvio/bot-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger           *logging.Logger
	MessagingHandler *messaging.Handler
	TenantHandler    *tenant.Handler
	MetricsHandler   http.Handler
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Group(func(public chi.Router) {
		public.Get("/health", cfg.MessagingHandler.HealthCheck)

		public.Route("/messaging", func(r chi.Router) {
			r.Post("/inbound", cfg.MessagingHandler.Inbound)
		})

		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	if cfg.TenantHandler != nil {
		r.Mount("/tenants", cfg.TenantHandler.Routes())
	}

	return r
}
