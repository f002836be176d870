package handlers

import (
	"TokenGate/internal/config"
	"TokenGate/internal/middleware"
	"TokenGate/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров. Без reg метрики не собираются.
func NewHandler(
	tokenService *service.TokenService,
	logger *zap.SugaredLogger,
	config *config.Config,
	reg *prometheus.Registry,
) *Handler {
	r := chi.NewRouter()

	// HEAD обслуживается GET-маршрутами
	r.Use(chimw.GetHead)
	r.Use(middleware.WithRequestID)
	if config.EnableMetrics && reg != nil {
		r.Use(middleware.WithMetrics(middleware.NewMetrics(reg)))
	}
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	tokenHandler := NewTokenHandler(tokenService, logger)

	// Token routes
	r.Get("/auth/{token}", tokenHandler.Validate)
	r.Get("/auth/{token}/status", tokenHandler.Status)

	if config.EnableMetrics && reg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	return &Handler{Router: r}
}
