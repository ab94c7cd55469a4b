package showcase

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ProductShowcase/internal/catalog"
	"ProductShowcase/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// TrustProxy keys rate limits by X-Forwarded-For.
	TrustProxy bool
}

const (
	createLimitPerMin = 30
	limitWindow       = 60 * time.Second
)

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if s.CreateLimiter == nil {
		s.CreateLimiter = kit.NewIPRateLimiter(createLimitPerMin, limitWindow)
	}
	s.CreateLimiter.TrustForwarded = deps.TrustProxy

	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, deps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", s.handleReady)

	cat := &catalog.Server{Store: s.Catalog, Log: s.Log}
	cat.Register(r)

	r.Get("/", s.handlePage)
	r.Post("/select/{productID}", s.handleSelect)
	r.Post("/dismiss", s.handleDismiss)
	r.Post("/cart/{productID}", s.handleAdd)
	r.Post("/purchase", s.handlePurchase)

	r.Route("/api/sessions", func(rr chi.Router) {
		rr.With(s.CreateLimiter.Middleware).Post("/", s.apiCreate)
		rr.Route("/{sessionID}", func(sr chi.Router) {
			sr.Get("/", s.apiView)
			sr.Delete("/", s.apiClose)
			sr.Put("/query", s.apiSetQuery)
			sr.Put("/selection", s.apiSelect)
			sr.Delete("/selection", s.apiDismiss)
			sr.Post("/cart", s.apiAdd)
			sr.Post("/purchase", s.apiPurchase)
		})
	})

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
