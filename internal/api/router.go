package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// healthCheckTimeout bounds each dependency check in /health.
const healthCheckTimeout = 2 * time.Second

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/metrics", s.handleMetrics)

		// Directives authenticate with the bearer token they carry.
		r.Post("/directives", s.handleDirective)

		if s.wsCfg.Enabled {
			r.Get("/ws", s.handleFeed)
		}
	})

	return r
}

// handleHealth returns the server health status. Optional dependencies
// are reported but never fail the check; the bridge serves directives
// without them.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "ok",
		"version": s.version,
	}

	components := map[string]string{}
	if s.mqtt != nil {
		components["mqtt"] = s.componentStatus(r.Context(), s.mqtt)
	}
	if s.influx != nil {
		components["influxdb"] = s.componentStatus(r.Context(), s.influx)
	}
	if len(components) > 0 {
		body["components"] = components
	}

	writeJSON(w, http.StatusOK, body)
}

func (s *Server) componentStatus(ctx context.Context, hc HealthChecker) string {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	if err := hc.HealthCheck(ctx); err != nil {
		return "down"
	}
	return "ok"
}
