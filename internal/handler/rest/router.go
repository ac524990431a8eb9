package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/service"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/health"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/middleware"
)

// RouterConfig carries the collaborators the REST router wires together.
type RouterConfig struct {
	Users         *service.UserService
	Carts         *service.CartService
	Verifier      middleware.TokenVerifier
	HealthHandler *health.Handler
	Logger        *slog.Logger
	TokenTTL      time.Duration
	CORS          middleware.CORSConfig
}

// NewRouter creates a chi router with all storefront REST routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("storeapi"))
	r.Use(middleware.Tracing("storeapi"))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogger(cfg.Logger))

	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Backend is running..."))
	})

	authHandler := NewAuthHandler(cfg.Users, cfg.Logger, cfg.TokenTTL)
	cartHandler := NewCartHandler(cfg.Carts, cfg.Logger)

	authRoutes := func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Post("/registeruser", authHandler.Register)
		r.Post("/login", authHandler.Login)
	}

	// The frontend historically hits both prefixes for the same endpoints.
	r.Route("/api/auth", authRoutes)
	r.Route("/api/login", authRoutes)

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.RequireAuth(cfg.Verifier))

		r.Post("/add-to-cart", cartHandler.AddToCart)
		r.Get("/get-cart", cartHandler.GetCart)
		r.Post("/update-qty", cartHandler.UpdateQty)
		r.Post("/remove-item", cartHandler.RemoveItem)
		r.Post("/clear", cartHandler.ClearCart)
	})

	return r
}
