package service

import (
	"context"

	"github.com/Behyna/paylink-reconciler/internal/classifier"
	"github.com/Behyna/paylink-reconciler/internal/metrics"
	"github.com/Behyna/paylink-reconciler/pkg/storefront"
	"go.uber.org/zap"
)

type PaidOutcome string

const (
	PaidOutcomeSucceeded PaidOutcome = "succeeded"
	PaidOutcomeDegraded  PaidOutcome = "degraded"
	PaidOutcomeFailed    PaidOutcome = "failed"
)

// PaidResult reports how an order was marked paid. Err is the primary
// failure for degraded and failed outcomes; LabelErr is a paid-label write
// failure on an otherwise succeeded mark.
type PaidResult struct {
	Outcome  PaidOutcome
	Err      error
	LabelErr error
}

type PaidMarker interface {
	MarkPaid(ctx context.Context, orderID string) PaidResult
}

type paidMarker struct {
	storefront storefront.Client
	labels     LabelReconciler
	vocabulary Vocabulary
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewPaidMarker(client storefront.Client, labels LabelReconciler, vocabulary Vocabulary,
	metrics *metrics.Metrics, logger *zap.Logger) PaidMarker {
	return &paidMarker{storefront: client, labels: labels, vocabulary: vocabulary, metrics: metrics, logger: logger}
}

func (p *paidMarker) MarkPaid(ctx context.Context, orderID string) PaidResult {
	result := p.markPaid(ctx, orderID)
	p.metrics.RecordPaidMark(string(result.Outcome))
	return result
}

func (p *paidMarker) markPaid(ctx context.Context, orderID string) PaidResult {
	order, err := p.storefront.GetOrder(ctx, orderID)
	switch {
	case err != nil:
		p.logger.Warn("Failed to read order before marking paid, trying primary path",
			zap.String("orderID", orderID), zap.Error(err))
	case order.IsPaid():
		p.logger.Info("Order already paid", zap.String("orderID", orderID))
		return PaidResult{Outcome: PaidOutcomeSucceeded, LabelErr: p.applyPaidLabel(ctx, orderID)}
	}

	if _, err := p.storefront.MarkAsPaid(ctx, orderID); err != nil {
		p.logger.Warn("Failed to mark order as paid, applying fallback label",
			zap.String("orderID", orderID), zap.Error(err))
		return p.fallback(ctx, orderID, err)
	}

	p.logger.Info("Order marked as paid", zap.String("orderID", orderID))

	return PaidResult{Outcome: PaidOutcomeSucceeded, LabelErr: p.applyPaidLabel(ctx, orderID)}
}

func (p *paidMarker) applyPaidLabel(ctx context.Context, orderID string) error {
	err := p.labels.ApplyLabel(ctx, orderID, classifier.LabelPaid)
	if err != nil {
		p.logger.Warn("Failed to apply paid label", zap.String("orderID", orderID), zap.Error(err))
	}
	return err
}

func (p *paidMarker) fallback(ctx context.Context, orderID string, cause error) PaidResult {
	err := p.labels.ApplyLabels(ctx, orderID, p.vocabulary.Paid, p.vocabulary.Fallback)
	if err != nil {
		p.logger.Error("Failed to apply fallback label",
			zap.String("orderID", orderID),
			zap.NamedError("primaryError", cause),
			zap.Error(err))
		return PaidResult{Outcome: PaidOutcomeFailed, Err: cause, LabelErr: err}
	}

	return PaidResult{Outcome: PaidOutcomeDegraded, Err: cause}
}
