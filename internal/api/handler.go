package api

import (
	"github.com/Behyna/paylink-reconciler/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const serviceName = "paylink-reconciler"

// Handler serves the operational endpoints.
type Handler struct {
	logger   *zap.Logger
	database *metrics.DatabaseMetricsCollector
	gatherer prometheus.Gatherer
}

func NewHandler(logger *zap.Logger, database *metrics.DatabaseMetricsCollector, gatherer prometheus.Gatherer) *Handler {
	return &Handler{logger: logger, database: database, gatherer: gatherer}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) Health() fiber.Handler {
	return metrics.HealthHandler(h.database, serviceName)
}

func (h *Handler) Metrics() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
}
