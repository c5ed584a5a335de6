package publishers

import (
	"context"
	"time"

	"github.com/Behyna/paylink-reconciler/internal/config"
	"github.com/Behyna/paylink-reconciler/internal/service"
	"github.com/Behyna/paylink-reconciler/pkg/mq"
	"go.uber.org/zap"
)

type PollPublisher interface {
	Publish(ctx context.Context) error
}

type pollPublisher struct {
	ledger    service.LedgerService
	publisher mq.Publisher
	queue     string
	poller    config.Poller
	logger    *zap.Logger
	now       func() time.Time
}

func NewPollPublisher(ledger service.LedgerService, publisher mq.Publisher, cfg *config.Config,
	logger *zap.Logger) PollPublisher {
	return &pollPublisher{
		ledger:    ledger,
		publisher: publisher,
		queue:     cfg.RabbitMQ.PollQueue,
		poller:    cfg.Poller,
		logger:    logger,
		now:       time.Now,
	}
}

// Publish enqueues every pending transaction created within the poll window.
func (p *pollPublisher) Publish(ctx context.Context) error {
	query := service.PollCandidatesQuery{Limit: p.poller.BatchSize}
	if p.poller.Window > 0 {
		since := p.now().Add(-p.poller.Window)
		query.Since = &since
	}

	candidates, err := p.ledger.FindPollCandidates(ctx, query)
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		return nil
	}

	p.logger.Info("Publishing poll commands", zap.Int("count", len(candidates)))

	successCount := 0
	for _, tx := range candidates {
		cmd := service.PollTransactionCommand{TransactionID: tx.TransactionID}
		if err := mq.PublishJSON(ctx, p.publisher, p.queue, cmd); err != nil {
			p.logger.Error("Failed to publish poll command",
				zap.Error(err),
				zap.String("transactionID", tx.TransactionID))
			continue
		}

		successCount++
	}

	if successCount > 0 {
		p.logger.Info("Successfully published poll commands",
			zap.Int("published", successCount),
			zap.Int("total", len(candidates)))
	}

	return nil
}
