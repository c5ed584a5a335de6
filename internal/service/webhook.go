package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Behyna/paylink-reconciler/internal/constants"
	"github.com/Behyna/paylink-reconciler/internal/metrics"
	"github.com/Behyna/paylink-reconciler/internal/model"
	"github.com/Behyna/paylink-reconciler/internal/repository"
	"go.uber.org/zap"
)

var ErrMissingTransactionID = errors.New("transaction id is required")

const (
	webhookMsgProcessed  = "Notificación procesada correctamente"
	webhookMsgIgnored    = "Notificación ignorada: la transacción ya fue pagada"
	webhookMsgNoOrder    = "Notificación procesada sin orden asociada"
	webhookMsgIncomplete = "Notificación procesada con errores de sincronización"
)

type WebhookService interface {
	Handle(ctx context.Context, n WebhookNotification) (WebhookResponse, error)
}

type webhook struct {
	reconciler Reconciler
	journal    journal
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewWebhookService(reconciler Reconciler, notifications repository.NotificationRepository,
	metrics *metrics.Metrics, logger *zap.Logger) WebhookService {
	return &webhook{
		reconciler: reconciler,
		journal:    journal{repo: notifications, logger: logger},
		metrics:    metrics,
		logger:     logger,
	}
}

func (w *webhook) Handle(ctx context.Context, n WebhookNotification) (WebhookResponse, error) {
	n.TransactionID = strings.TrimSpace(n.TransactionID)
	n.State = strings.TrimSpace(n.State)

	id := w.journal.open(ctx, model.NotificationSourceWebhook, n.TransactionID, n.State, n.Payload)

	result, err := w.handle(ctx, n)

	outcome := outcomeFor(result, err)
	detail := strings.Join(result.Errors, "; ")
	if err != nil {
		detail = err.Error()
	}
	w.journal.close(ctx, id, outcome, detail)
	w.metrics.RecordNotification(model.NotificationSourceWebhook, outcome)

	if err != nil {
		w.logger.Warn("Webhook notification rejected",
			zap.String("transactionID", n.TransactionID),
			zap.String("state", n.State),
			zap.String("outcome", outcome),
			zap.Error(err))
		return WebhookResponse{}, err
	}

	return newWebhookResponse(result), nil
}

func (w *webhook) handle(ctx context.Context, n WebhookNotification) (ReconcileResult, error) {
	if n.TransactionID == "" {
		return ReconcileResult{}, NewServiceError(constants.ErrCodeInvalidNotification, ErrMissingTransactionID)
	}
	if n.State == "" {
		return ReconcileResult{}, NewServiceError(constants.ErrCodeInvalidNotification, ErrMissingState)
	}

	return w.reconciler.Apply(ctx, ApplyStateCommand{
		TransactionID:        n.TransactionID,
		State:                n.State,
		PaymentLinkReference: strings.TrimSpace(n.PaymentLinkReference),
		Source:               model.NotificationSourceWebhook,
	})
}

func newWebhookResponse(result ReconcileResult) WebhookResponse {
	response := WebhookResponse{
		Success:       true,
		Message:       webhookMsgProcessed,
		TransactionID: result.TransactionID,
		AppliedLabel:  result.Label,
		Propagated:    result.Propagated,
		OldState:      result.OldState,
		NewState:      result.NewState,
		PaidOutcome:   result.PaidOutcome,
		Ignored:       result.Ignored,
		Errors:        result.Errors,
	}
	if result.OrderID != "" {
		orderID := result.OrderID
		response.OrderID = &orderID
	}

	switch {
	case result.Ignored:
		response.Message = webhookMsgIgnored
	case result.OrderID == "":
		response.Message = webhookMsgNoOrder
	case !result.Propagated:
		response.Message = webhookMsgIncomplete
	}

	return response
}
