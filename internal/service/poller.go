package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Behyna/paylink-reconciler/internal/constants"
	"github.com/Behyna/paylink-reconciler/internal/metrics"
	"github.com/Behyna/paylink-reconciler/internal/model"
	"github.com/Behyna/paylink-reconciler/internal/repository"
	"github.com/Behyna/paylink-reconciler/pkg/processor"
	"go.uber.org/zap"
)

const (
	pollResultUpdated   = "updated"
	pollResultUnchanged = "unchanged"
	pollResultNoLink    = "no_link"
	pollResultFailed    = "failed"
)

// PollerService asks the processor for the current state of in-flight
// transactions and feeds changes through the Reconciler.
type PollerService interface {
	Poll(ctx context.Context, tx model.Transaction) (bool, error)
	PollByTransactionID(ctx context.Context, transactionID string) (PollBatchResult, error)
	PollPending(ctx context.Context, limit int) (PollBatchResult, error)
	PollSince(ctx context.Context, since time.Time, limit int) (PollBatchResult, error)
}

type poller struct {
	ledger     LedgerService
	processor  processor.Client
	reconciler Reconciler
	journal    journal
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewPollerService(ledger LedgerService, client processor.Client, reconciler Reconciler,
	notifications repository.NotificationRepository, metrics *metrics.Metrics, logger *zap.Logger) PollerService {
	return &poller{
		ledger:     ledger,
		processor:  client,
		reconciler: reconciler,
		journal:    journal{repo: notifications, logger: logger},
		metrics:    metrics,
		logger:     logger,
	}
}

// Poll reports whether the ledger changed. A processor failure skips the
// transaction and is returned as PROCESSOR_UNAVAILABLE.
func (p *poller) Poll(ctx context.Context, tx model.Transaction) (bool, error) {
	if tx.PaymentLinkReference == "" {
		p.metrics.RecordPoll(pollResultNoLink)
		p.logger.Debug("Transaction has no payment link, skipping poll", zap.String("transactionID", tx.TransactionID))
		return false, nil
	}

	link, err := p.processor.SearchPaymentLink(ctx, tx.PaymentLinkReference)
	if err != nil {
		p.metrics.RecordPoll(pollResultFailed)
		p.logger.Warn("Failed to query payment link state",
			zap.String("transactionID", tx.TransactionID),
			zap.String("paymentLinkID", tx.PaymentLinkReference),
			zap.Error(err))
		return false, NewServiceError(constants.ErrCodeProcessorUnavailable, err)
	}

	state := model.ParsePaymentState(link.State)
	if state == "" || state == tx.PaymentState {
		p.metrics.RecordPoll(pollResultUnchanged)
		return false, nil
	}

	payload, _ := json.Marshal(link)
	id := p.journal.open(ctx, model.NotificationSourcePoll, tx.TransactionID, string(state), payload)

	result, err := p.reconciler.Apply(ctx, ApplyStateCommand{
		TransactionID: tx.TransactionID,
		State:         string(state),
		Source:        model.NotificationSourcePoll,
	})

	outcome := outcomeFor(result, err)
	p.metrics.RecordNotification(model.NotificationSourcePoll, outcome)
	if err != nil {
		p.journal.close(ctx, id, outcome, err.Error())
		p.metrics.RecordPoll(pollResultFailed)
		return false, err
	}
	p.journal.close(ctx, id, outcome, "")

	if result.Ignored {
		p.metrics.RecordPoll(pollResultUnchanged)
		return false, nil
	}

	p.metrics.RecordPoll(pollResultUpdated)
	p.logger.Info("Transaction updated from processor",
		zap.String("transactionID", tx.TransactionID),
		zap.String("from", result.OldState.Name()),
		zap.String("to", result.NewState.Name()),
		zap.Bool("propagated", result.Propagated))

	return true, nil
}

func (p *poller) PollByTransactionID(ctx context.Context, transactionID string) (PollBatchResult, error) {
	tx, err := p.ledger.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return PollBatchResult{}, err
	}

	return p.pollAll(ctx, []model.Transaction{*tx}), nil
}

func (p *poller) PollPending(ctx context.Context, limit int) (PollBatchResult, error) {
	txs, err := p.ledger.FindPollCandidates(ctx, PollCandidatesQuery{Limit: limit})
	if err != nil {
		return PollBatchResult{}, err
	}

	return p.pollAll(ctx, txs), nil
}

func (p *poller) PollSince(ctx context.Context, since time.Time, limit int) (PollBatchResult, error) {
	txs, err := p.ledger.FindPollCandidates(ctx, PollCandidatesQuery{Since: &since, Limit: limit})
	if err != nil {
		return PollBatchResult{}, err
	}

	return p.pollAll(ctx, txs), nil
}

func (p *poller) pollAll(ctx context.Context, txs []model.Transaction) PollBatchResult {
	result := PollBatchResult{Items: make([]PollItem, 0, len(txs))}

	for _, tx := range txs {
		if ctx.Err() != nil {
			break
		}

		item := PollItem{TransactionID: tx.TransactionID, OldState: tx.PaymentState}
		result.Checked++

		updated, err := p.Poll(ctx, tx)
		switch {
		case err != nil:
			result.Failed++
			item.Error = err.Error()
		case updated:
			result.Updated++
			item.Updated = true
			if current, err := p.ledger.FindByTransactionID(ctx, tx.TransactionID); err == nil {
				item.NewState = current.PaymentState
			}
		default:
			result.Skipped++
		}

		result.Items = append(result.Items, item)
	}

	p.logger.Info("Poll batch completed",
		zap.Int("checked", result.Checked),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))

	return result
}
