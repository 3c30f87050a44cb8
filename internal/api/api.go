package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"apidocs/internal/apidoc"
	"apidocs/internal/config"
	"apidocs/internal/metrics"
)

type Dependencies struct {
	Config   config.Config
	Document *apidoc.Document
	Metrics  *metrics.Metrics
}

func New(dep Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(securityHeaders)
	if len(dep.Config.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: dep.Config.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		}).Handler)
	}

	api := &server{
		cfg:     dep.Config,
		doc:     dep.Document,
		metrics: dep.Metrics,
	}
	r.Use(api.observeRequests)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no such route", map[string]any{"path": r.URL.Path})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", map[string]any{"method": r.Method})
	})

	Mount(r, dep.Config.Prefix, dep.Document)

	if dep.Config.OpsEndpoints {
		r.Get("/healthz", api.handleHealthz)
		r.Get("/readyz", api.handleReadyz)
		r.Get("/metrics", api.handleMetrics)
	}

	return r
}
