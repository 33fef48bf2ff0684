// Package api assembles the HTTP surface: middleware, the root and probe
// routes, metrics, and the product and album handlers.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ShopAPI/internal/album"
	"ShopAPI/internal/product"
	"ShopAPI/pkg/kit"
)

const (
	welcomeMessage = "Welcome to the API! Use /products or /albums to interact with the data."

	readyTimeout = 1 * time.Second
)

// Stores are the two collections the API serves. Each is owned by its own
// handler set; they share nothing.
type Stores struct {
	Products product.Store
	Albums   album.Store
}

type CORSConfig struct {
	Enabled        bool
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	// TrustProxy takes the client address from forwarding headers (chi RealIP).
	// Only set it when every request arrives through a proxy that
	// overwrites those headers.
	TrustProxy bool

	MetricsEnabled bool
	MetricsToken   string

	CORS      CORSConfig
	RateLimit RateLimitConfig
}

func NewHandler(stores Stores, deps HTTPDeps) http.Handler {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, stores, deps)
	setupRoutes(r, stores, deps)

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	if deps.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(kit.RequestID)
	r.Use(kit.Recoverer(deps.Log))
	r.Use(kit.Logging(deps.Log))

	if deps.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: deps.CORS.AllowedOrigins,
			AllowedMethods: deps.CORS.AllowedMethods,
			AllowedHeaders: deps.CORS.AllowedHeaders,
			ExposedHeaders: []string{kit.RequestIDHeader},
			MaxAge:         deps.CORS.MaxAge,
		}))
	}

	if deps.RateLimit.Requests > 0 {
		limiter := kit.NewIPRateLimiter(deps.RateLimit.Requests, deps.RateLimit.Window)
		r.Use(limiter.Middleware)
	}
}

func setupMetrics(r *chi.Mux, stores Stores, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	metrics.TrackRecords("products", countOf(stores.Products.Count))
	metrics.TrackRecords("albums", countOf(stores.Albums.Count))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func setupRoutes(r *chi.Mux, stores Stores, deps HTTPDeps) {
	// Set before Register so mounted subrouters inherit it.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		kit.WriteError(w, r, http.StatusNotFound, "Route not found", nil)
	})

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		kit.WriteText(w, http.StatusOK, welcomeMessage)
	})
	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(stores, deps.Log))

	products := &product.Server{Store: stores.Products, Log: deps.Log.Named("products")}
	products.Register(r)

	albums := &album.Server{Store: stores.Albums, Log: deps.Log.Named("albums")}
	albums.Register(r)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(stores Stores, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := stores.Products.Ping(ctx); err != nil {
			log.Warn("readyz failed: products", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		if err := stores.Albums.Ping(ctx); err != nil {
			log.Warn("readyz failed: albums", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func countOf(count func(context.Context) (int, error)) func() int {
	return func() int {
		n, err := count(context.Background())
		if err != nil {
			return 0
		}
		return n
	}
}
