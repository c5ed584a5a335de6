package main

import (
	"context"
	"time"

	"github.com/Behyna/paylink-reconciler/internal/api"
	"github.com/Behyna/paylink-reconciler/internal/api/v1"
	"github.com/Behyna/paylink-reconciler/internal/api/validator"
	"github.com/Behyna/paylink-reconciler/internal/app"
	"github.com/Behyna/paylink-reconciler/internal/config"
	"github.com/Behyna/paylink-reconciler/internal/database"
	middleware "github.com/Behyna/paylink-reconciler/internal/error"
	"github.com/Behyna/paylink-reconciler/internal/metrics"
	goValidator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	version         = "1.0.0"
	collectInterval = 15 * time.Second
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			goValidator.New,
			validator.NewXValidator,
			NewFiber,
			NewDatabaseCollector,
			metrics.NewSystemCollector,
			NewGatherer,
			api.NewHandler,
			v1.NewHandler,
		),
		app.Core,
		fx.Invoke(startServer),
	).Run()
}

func NewFiber(m *metrics.Metrics, logger *zap.Logger) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
	})
	fiberApp.Use(recover.New())
	fiberApp.Use(metrics.HTTPMetricsMiddleware(m, logger))

	return fiberApp
}

func NewDatabaseCollector(m *metrics.Metrics, logger *zap.Logger, db *gorm.DB) *metrics.DatabaseMetricsCollector {
	return metrics.NewDatabaseMetricsCollector(m, logger, db)
}

func NewGatherer() prometheus.Gatherer {
	return prometheus.DefaultGatherer
}

func startServer(fiberApp *fiber.App, root *api.Handler, handler *v1.Handler, cfg *config.Config, db *gorm.DB,
	dbCollector *metrics.DatabaseMetricsCollector, systemCollector *metrics.SystemCollector,
	logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(fiberApp, root, handler, cfg.API.AdminToken)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := database.Migrate(ctx, db, cfg.Ledger); err != nil {
				logger.Error("Failed to migrate database", zap.Error(err))
				return err
			}

			interval := time.Duration(cfg.Database.MySQL.MetricsInterval) * time.Second
			if interval <= 0 {
				interval = collectInterval
			}
			dbCollector.Start(interval)
			systemCollector.Start(collectInterval, version)

			go func() {
				if err := fiberApp.Listen(cfg.API.Port); err != nil {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()

			logger.Info("API server started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			dbCollector.Stop()
			systemCollector.Stop()
			return fiberApp.ShutdownWithContext(ctx)
		},
	})
}
