package main

import (
	"context"

	"github.com/Behyna/paylink-reconciler/internal/app"
	"github.com/Behyna/paylink-reconciler/internal/config"
	"github.com/Behyna/paylink-reconciler/internal/consumers"
	"github.com/Behyna/paylink-reconciler/pkg/mq"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			app.NewMQConsumer,
			consumers.NewPollConsumer,
		),
		app.Core,
		app.Queue,
		fx.Invoke(runPollConsumer),
	).Run()
}

func runPollConsumer(cfg *config.Config, pollConsumer consumers.PollConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareQueues(cfg.RabbitMQ.PollQueue); err != nil {
				logger.Error("Declare queues failed", zap.Error(err))
				return err
			}

			go func() {
				if err := pollConsumer.Consume(appCtx); err != nil && appCtx.Err() == nil {
					logger.Error("Consumer exited", zap.Error(err))
				}
			}()

			logger.Info("Poll consumer started", zap.String("queue", cfg.RabbitMQ.PollQueue))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping poll consumer")
			cancel()
			return rabbit.Close()
		},
	})
}
