package graphql

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	gql "github.com/graphql-go/graphql"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/health"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/middleware"
)

// RouterConfig carries the collaborators the GraphQL router wires together.
type RouterConfig struct {
	Schema        gql.Schema
	Verifier      middleware.TokenVerifier
	HealthHandler *health.Handler
	Logger        *slog.Logger
	CORS          middleware.CORSConfig
}

// NewRouter creates a chi router serving the GraphQL endpoint. The auth gate
// here is permissive: identity is attached when a valid token rides along,
// and resolvers that need one enforce it themselves.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("graphql"))
	r.Use(middleware.Tracing("graphql"))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.OptionalAuth(cfg.Verifier))
	r.Use(middleware.RequestLogger(cfg.Logger))

	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	r.Method(http.MethodPost, "/graphql", NewHandler(cfg.Schema, cfg.Logger))

	return r
}
