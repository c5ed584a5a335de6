package main

import (
	"context"
	"time"

	"github.com/Behyna/paylink-reconciler/internal/app"
	"github.com/Behyna/paylink-reconciler/internal/config"
	"github.com/Behyna/paylink-reconciler/internal/publishers"
	"github.com/Behyna/paylink-reconciler/pkg/mq"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			app.NewMQPublisher,
			publishers.NewPollPublisher,
		),
		app.Core,
		app.Queue,
		fx.Invoke(runPollPublisher),
	).Run()
}

func runPollPublisher(cfg *config.Config, publisher publishers.PollPublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareQueues(cfg.RabbitMQ.PollQueue); err != nil {
				logger.Error("Declare queues failed", zap.Error(err))
				return err
			}

			go func() {
				ticker := time.NewTicker(cfg.Poller.Interval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("Failed to publish poll commands", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("Publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("Poll publisher started", zap.Duration("interval", cfg.Poller.Interval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping poll publisher")
			cancel()
			return rabbit.Close()
		},
	})
}
