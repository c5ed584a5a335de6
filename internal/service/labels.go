package service

import (
	"context"
	"fmt"

	"github.com/Behyna/paylink-reconciler/internal/classifier"
	"github.com/Behyna/paylink-reconciler/internal/model"
	"github.com/Behyna/paylink-reconciler/pkg/storefront"
	"go.uber.org/zap"
)

// LabelReconciler keeps an order's owned tags and payment narrative in sync
// with the ledger. The storefront is the only copy of either.
type LabelReconciler interface {
	ApplyLabel(ctx context.Context, orderID string, label classifier.Label) error
	ApplyLabels(ctx context.Context, orderID string, tags ...string) error
	UpsertNarrative(ctx context.Context, orderID string, tx model.Transaction, label classifier.Label) error
}

type labelReconciler struct {
	storefront storefront.Client
	vocabulary Vocabulary
	narrative  *Narrative
	logger     *zap.Logger
}

func NewLabelReconciler(client storefront.Client, vocabulary Vocabulary, narrative *Narrative,
	logger *zap.Logger) LabelReconciler {
	return &labelReconciler{storefront: client, vocabulary: vocabulary, narrative: narrative, logger: logger}
}

func (r *labelReconciler) ApplyLabel(ctx context.Context, orderID string, label classifier.Label) error {
	return r.ApplyLabels(ctx, orderID, r.vocabulary.Tag(label))
}

// ApplyLabels replaces every owned tag on the order with tags, keeping
// foreign tags in place.
func (r *labelReconciler) ApplyLabels(ctx context.Context, orderID string, tags ...string) error {
	order, err := r.storefront.GetOrder(ctx, orderID)
	if err != nil {
		r.logger.Warn("Failed to fetch order for labeling", zap.String("orderID", orderID), zap.Error(err))
		return fmt.Errorf("fetch order %s: %w", orderID, err)
	}

	next := order.Tags.Clone()
	next.Remove(r.vocabulary.Owned()...)
	for _, tag := range tags {
		next.Add(tag)
	}

	if next.Equal(order.Tags) {
		r.logger.Debug("Order labels already current", zap.String("orderID", orderID), zap.Strings("tags", tags))
		return nil
	}

	serialized := next.String()
	if err := r.storefront.UpdateOrder(ctx, orderID, storefront.OrderUpdate{Tags: &serialized}); err != nil {
		r.logger.Warn("Failed to write order labels", zap.String("orderID", orderID), zap.Error(err))
		return fmt.Errorf("update order %s tags: %w", orderID, err)
	}

	r.logger.Info("Order labels updated",
		zap.String("orderID", orderID),
		zap.String("from", order.Tags.String()),
		zap.String("to", serialized))

	return nil
}

func (r *labelReconciler) UpsertNarrative(ctx context.Context, orderID string, tx model.Transaction,
	label classifier.Label) error {
	block, err := r.narrative.Render(tx, label)
	if err != nil {
		return err
	}

	order, err := r.storefront.GetOrder(ctx, orderID)
	if err != nil {
		r.logger.Warn("Failed to fetch order for narrative", zap.String("orderID", orderID), zap.Error(err))
		return fmt.Errorf("fetch order %s: %w", orderID, err)
	}

	note := r.narrative.Merge(order.Note, block)
	if note == order.Note {
		return nil
	}

	if err := r.storefront.UpdateOrder(ctx, orderID, storefront.OrderUpdate{Note: &note}); err != nil {
		r.logger.Warn("Failed to write order narrative", zap.String("orderID", orderID), zap.Error(err))
		return fmt.Errorf("update order %s note: %w", orderID, err)
	}

	r.logger.Info("Order narrative updated",
		zap.String("orderID", orderID),
		zap.String("transactionID", tx.TransactionID),
		zap.String("label", string(label)))

	return nil
}
