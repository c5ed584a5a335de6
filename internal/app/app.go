// Package app holds the fx wiring shared by every binary.
package app

import (
	"github.com/Behyna/paylink-reconciler/internal/config"
	"github.com/Behyna/paylink-reconciler/internal/database"
	"github.com/Behyna/paylink-reconciler/internal/metrics"
	"github.com/Behyna/paylink-reconciler/internal/repository"
	"github.com/Behyna/paylink-reconciler/internal/service"
	"github.com/Behyna/paylink-reconciler/pkg/httpclient"
	"github.com/Behyna/paylink-reconciler/pkg/mq"
	"github.com/Behyna/paylink-reconciler/pkg/processor"
	"github.com/Behyna/paylink-reconciler/pkg/storefront"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Core provides the ledger, storefront and processor clients, and the
// reconciliation services. The caller supplies *config.Config and *zap.Logger.
var Core = fx.Options(
	fx.Provide(
		database.NewConnection,
		metrics.NewDefaultMetrics,

		repository.NewTransactionRepository,
		repository.NewSequenceRepository,
		repository.NewNotificationRepository,
		repository.NewTransactionManager,

		LedgerConfig,
		LabelsConfig,
		NarrativeConfig,
		NewStorefrontClient,
		NewProcessorClient,

		service.NewLedgerService,
		service.NewVocabulary,
		service.NewNarrative,
		service.NewLabelReconciler,
		service.NewPaidMarker,
		service.NewReconciler,
		service.NewWebhookService,
		service.NewPollerService,
		service.NewNotificationService,
	),
)

// Queue provides a RabbitMQ connection for the poll workers.
var Queue = fx.Options(
	fx.Provide(
		NewMQConnection,
		MQConfig,
	),
)

func LedgerConfig(cfg *config.Config) config.Ledger { return cfg.Ledger }

func LabelsConfig(cfg *config.Config) config.Labels { return cfg.Labels }

func NarrativeConfig(cfg *config.Config) config.Narrative { return cfg.Narrative }

func MQConfig(cfg *config.Config) mq.Config { return cfg.RabbitMQ }

func NewStorefrontClient(cfg *config.Config) storefront.Client {
	client := httpclient.NewHTTPClient(cfg.Storefront.Timeout)
	return storefront.NewClient(cfg.Storefront, client)
}

func NewProcessorClient(cfg *config.Config) processor.Client {
	client := httpclient.NewHTTPClient(cfg.Processor.Timeout)
	return processor.NewClient(cfg.Processor, client)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}
