package router

import (
	"net/http"

	"github.com/LavaJover/justwatch-proxy/internal/delivery/http/handlers"
	"github.com/LavaJover/justwatch-proxy/internal/delivery/http/middleware"
	"github.com/LavaJover/justwatch-proxy/internal/infrastructure/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func SetupRoutes(
	proxy *handlers.ProxyHandler,
	pricing *handlers.PricingHandler,
	m *metrics.ProxyMetrics,
	log *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// ---- Global Middleware ----
	r.Use(middleware.RequestID)
	r.Use(middleware.Observe(log, m))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false, // must be false when using "*"
		MaxAge:           300,
	}))

	// JustWatch passthrough
	r.Post("/graphql", proxy.GraphQL)
	r.Get("/content/urls", proxy.ContentURLs)
	r.Get("/health", proxy.Health)

	r.Route("/pricing", func(r chi.Router) {
		r.Get("/usd", pricing.ConvertToUSD)
		r.Get("/status", pricing.Status)
	})

	r.Method(http.MethodGet, "/metrics", m.Handler())

	return r
}
