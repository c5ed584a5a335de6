package consumers

import (
	"context"
	"encoding/json"

	"github.com/Behyna/paylink-reconciler/internal/constants"
	"github.com/Behyna/paylink-reconciler/internal/service"
	"github.com/Behyna/paylink-reconciler/pkg/mq"
	"go.uber.org/zap"
)

type PollConsumer interface {
	Consume(ctx context.Context) error
}

type pollConsumer struct {
	service  service.PollerService
	consumer mq.Consumer
	cfg      mq.Config
	logger   *zap.Logger
}

func NewPollConsumer(service service.PollerService, consumer mq.Consumer, cfg mq.Config, logger *zap.Logger) PollConsumer {
	return &pollConsumer{
		service:  service,
		consumer: consumer,
		cfg:      cfg,
		logger:   logger,
	}
}

func (p *pollConsumer) Consume(ctx context.Context) error {
	return p.consumer.Consume(ctx, p.cfg.Prefetch, p.cfg.PollQueue, p.handleMessage)
}

// handleMessage requeues only database failures. Processor outages and
// unknown ids are acked and picked up again by a later publisher tick.
func (p *pollConsumer) handleMessage(ctx context.Context, body []byte) error {
	var cmd service.PollTransactionCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		p.logger.Warn("Invalid poll command", zap.Error(err), zap.ByteString("body", body))
		return err
	}

	result, err := p.service.PollByTransactionID(ctx, cmd.TransactionID)
	if err == nil {
		p.logger.Debug("Poll command handled",
			zap.String("transactionID", cmd.TransactionID),
			zap.Int("updated", result.Updated))
		return nil
	}

	if service.ErrorCode(err) == constants.ErrCodeDatabase {
		return mq.Temporary(err)
	}

	p.logger.Info("Poll command dropped",
		zap.String("transactionID", cmd.TransactionID),
		zap.String("code", service.ErrorCode(err)),
		zap.Error(err))
	return nil
}
