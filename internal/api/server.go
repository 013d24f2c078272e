package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/onlyscores/onlyscores-data/internal/api/handler"
	"github.com/onlyscores/onlyscores-data/internal/cache"
	"github.com/onlyscores/onlyscores-data/internal/config"
	"github.com/onlyscores/onlyscores-data/internal/db"
	"github.com/onlyscores/onlyscores-data/internal/subscription"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(p handler.ScoresProvider, pool *db.Pool, appCache *cache.Cache, subs *subscription.Store, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(p, pool, appCache, subs, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Get("/leagues", h.GetLeagues)
		r.Get("/teams", h.GetTeams)
		r.Get("/scores", h.GetScores)

		r.Post("/device/subscribe", h.SubscribeDevice)
		r.Post("/analytics/events", h.TrackEvent)
	})

	return r
}
