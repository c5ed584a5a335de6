package service

import (
	"context"

	"github.com/Behyna/paylink-reconciler/internal/classifier"
	"github.com/Behyna/paylink-reconciler/internal/constants"
	"github.com/Behyna/paylink-reconciler/internal/metrics"
	"github.com/Behyna/paylink-reconciler/internal/model"
	"go.uber.org/zap"
)

const maxApplyAttempts = 3

// Reconciler applies a reported processor state to the ledger and
// propagates the resulting label to the associated order.
type Reconciler interface {
	Apply(ctx context.Context, cmd ApplyStateCommand) (ReconcileResult, error)
}

type reconciler struct {
	ledger     LedgerService
	labels     LabelReconciler
	paidMarker PaidMarker
	vocabulary Vocabulary
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewReconciler(ledger LedgerService, labels LabelReconciler, paidMarker PaidMarker, vocabulary Vocabulary,
	metrics *metrics.Metrics, logger *zap.Logger) Reconciler {
	return &reconciler{
		ledger:     ledger,
		labels:     labels,
		paidMarker: paidMarker,
		vocabulary: vocabulary,
		metrics:    metrics,
		logger:     logger,
	}
}

func (r *reconciler) Apply(ctx context.Context, cmd ApplyStateCommand) (ReconcileResult, error) {
	state := model.ParsePaymentState(cmd.State)
	if state == "" {
		return ReconcileResult{}, NewServiceError(constants.ErrCodeInvalidNotification, ErrMissingState)
	}

	if !state.Known() {
		r.metrics.RecordUnknownState(string(state))
		r.logger.Warn("Unknown processor state, treating as pending",
			zap.String("transactionID", cmd.TransactionID),
			zap.String("state", string(state)))
	}

	var (
		current *model.Transaction
		updated *model.Transaction
		err     error
	)
	for attempt := 1; ; attempt++ {
		current, err = r.ledger.FindByTransactionID(ctx, cmd.TransactionID)
		if err != nil {
			return ReconcileResult{}, err
		}

		if current.PaymentState == model.PaymentStateSucceeded && state != model.PaymentStateSucceeded {
			r.logger.Warn("Ignoring state report for succeeded transaction",
				zap.String("transactionID", cmd.TransactionID),
				zap.String("state", string(state)),
				zap.String("source", cmd.Source))
			return r.ignored(*current), nil
		}

		updated, err = r.ledger.UpdateState(ctx, UpdateStateCommand{
			TransactionID:        cmd.TransactionID,
			State:                string(state),
			PaymentLinkReference: cmd.PaymentLinkReference,
			ExpectedVersion:      current.Version,
		})
		if err == nil {
			break
		}
		if ErrorCode(err) != constants.ErrCodeStateConflict || attempt == maxApplyAttempts {
			return ReconcileResult{}, err
		}
	}

	classification := classifier.Classify(string(updated.PaymentState))

	result := ReconcileResult{
		TransactionID: updated.TransactionID,
		OrderID:       updated.Order(),
		OldState:      current.PaymentState,
		NewState:      updated.PaymentState,
		Label:         classification.Label,
	}

	r.logger.Info("Transaction state updated",
		zap.String("transactionID", updated.TransactionID),
		zap.String("from", current.PaymentState.Name()),
		zap.String("to", updated.PaymentState.Name()),
		zap.String("label", string(classification.Label)),
		zap.String("source", cmd.Source))

	if !updated.HasOrder() {
		r.logger.Info("No order associated, skipping propagation", zap.String("transactionID", updated.TransactionID))
		return result, nil
	}

	r.propagate(ctx, *updated, &result)

	return result, nil
}

func (r *reconciler) propagate(ctx context.Context, tx model.Transaction, result *ReconcileResult) {
	orderID := tx.Order()

	if result.Label == classifier.LabelPaid {
		paid := r.paidMarker.MarkPaid(ctx, orderID)
		result.PaidOutcome = paid.Outcome

		switch paid.Outcome {
		case PaidOutcomeSucceeded:
			result.LabelUpdated = paid.LabelErr == nil
		case PaidOutcomeDegraded:
			result.LabelUpdated = true
			result.Errors = append(result.Errors, "mark as paid: "+paid.Err.Error())
		default:
			result.Errors = append(result.Errors, "mark as paid: "+paid.Err.Error())
		}
		if paid.LabelErr != nil {
			result.Errors = append(result.Errors, "label: "+paid.LabelErr.Error())
		}
		r.metrics.RecordPropagation("mark_paid", paid.Err)
	} else {
		err := r.labels.ApplyLabel(ctx, orderID, result.Label)
		result.LabelUpdated = err == nil
		if err != nil {
			result.Errors = append(result.Errors, "label: "+err.Error())
		}
		r.metrics.RecordPropagation("label", err)
	}

	if result.LabelUpdated {
		result.AppliedLabel = r.vocabulary.Tag(result.Label)
	}

	err := r.labels.UpsertNarrative(ctx, orderID, tx, result.Label)
	result.NarrativeUpdated = err == nil
	if err != nil {
		result.Errors = append(result.Errors, "narrative: "+err.Error())
	}
	r.metrics.RecordPropagation("narrative", err)

	result.Propagated = result.LabelUpdated && result.NarrativeUpdated &&
		(result.Label != classifier.LabelPaid || result.PaidOutcome == PaidOutcomeSucceeded)

	if !result.Propagated {
		r.logger.Warn("Order propagation incomplete",
			zap.String("transactionID", tx.TransactionID),
			zap.String("orderID", orderID),
			zap.Strings("errors", result.Errors))
	}
}

func (r *reconciler) ignored(tx model.Transaction) ReconcileResult {
	return ReconcileResult{
		TransactionID: tx.TransactionID,
		OrderID:       tx.Order(),
		OldState:      tx.PaymentState,
		NewState:      tx.PaymentState,
		Label:         classifier.Classify(string(tx.PaymentState)).Label,
		Ignored:       true,
	}
}
