package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/Behyna/paylink-reconciler/internal/classifier"
	"github.com/Behyna/paylink-reconciler/internal/constants"
	"github.com/Behyna/paylink-reconciler/internal/mocks"
	"github.com/Behyna/paylink-reconciler/internal/model"
	"github.com/Behyna/paylink-reconciler/internal/repository"
	"github.com/Behyna/paylink-reconciler/internal/service"
	"github.com/Behyna/paylink-reconciler/pkg/storefront"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWebhook_EndToEnd(t *testing.T) {
	ctx := context.Background()

	t.Run("Success notification marks the order paid", func(t *testing.T) {
		s := newStack(t)
		s.storefront.AddOrder("123", "pending", "Regalo", "pending")

		tx, err := s.ledger.Create(ctx, service.CreateTransactionCommand{
			OrderID:              "123",
			Amount:               decimal.RequireFromString("15.00"),
			Currency:             "PEN",
			PaymentLinkReference: "PL-1",
			PaymentLinkAddress:   "https://pay.example/PL-1",
		})
		require.NoError(t, err)

		resp, err := s.webhook.Handle(ctx, service.WebhookNotification{
			TransactionID: tx.TransactionID,
			State:         "3",
			Payload:       []byte(`{"transactionId":"` + tx.TransactionID + `","state":"3"}`),
		})
		require.NoError(t, err)

		assert.True(t, resp.Success)
		assert.True(t, resp.Propagated)
		assert.Equal(t, classifier.LabelPaid, resp.AppliedLabel)
		require.NotNil(t, resp.OrderID)
		assert.Equal(t, "123", *resp.OrderID)
		assert.Equal(t, model.PaymentStateGenerated, resp.OldState)
		assert.Equal(t, model.PaymentStateSucceeded, resp.NewState)
		assert.Equal(t, service.PaidOutcomeSucceeded, resp.PaidOutcome)

		stored, err := s.ledger.FindByTransactionID(ctx, tx.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentStateSucceeded, stored.PaymentState)
		assert.NotNil(t, stored.LastNotificationAt)

		order := s.storefront.Order("123")
		assert.Equal(t, 1, s.storefront.MarkAsPaidCalls)
		assert.Equal(t, "paid", order.Tags.String())
		assert.Equal(t, storefront.FinancialStatusPaid, order.FinancialStatus)
		assert.True(t, strings.HasPrefix(order.Note, "Regalo\n\n"))
		assert.Contains(t, order.Note, "PAGO CONFIRMADO")
		assert.Contains(t, order.Note, "15.00 PEN")
		assert.Contains(t, order.Note, tx.TransactionID)

		journal, err := s.notifs.List(ctx, repository.NotificationFilter{TransactionID: tx.TransactionID})
		require.NoError(t, err)
		require.Len(t, journal, 1)
		assert.Equal(t, model.NotificationOutcomeApplied, journal[0].Outcome)
	})

	t.Run("Redelivered success is idempotent", func(t *testing.T) {
		s := newStack(t)
		s.storefront.AddOrder("123", "pending", "", "pending")

		tx, err := s.ledger.Create(ctx, createCommand("123"))
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			_, err := s.webhook.Handle(ctx, service.WebhookNotification{TransactionID: tx.TransactionID, State: "3"})
			require.NoError(t, err)
		}

		assert.Equal(t, 1, s.storefront.MarkAsPaidCalls)
		order := s.storefront.Order("123")
		assert.Equal(t, "paid", order.Tags.String())
		assert.Equal(t, 1, strings.Count(order.Note, "[payment-status]"))
	})

	t.Run("Transaction without order updates only the ledger", func(t *testing.T) {
		s := newStack(t)

		tx, err := s.ledger.Create(ctx, createCommand(""))
		require.NoError(t, err)

		resp, err := s.webhook.Handle(ctx, service.WebhookNotification{TransactionID: tx.TransactionID, State: "3"})
		require.NoError(t, err)

		assert.True(t, resp.Success)
		assert.False(t, resp.Propagated)
		assert.Nil(t, resp.OrderID)
		assert.Equal(t, 0, s.storefront.Calls())

		stored, err := s.ledger.FindByTransactionID(ctx, tx.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentStateSucceeded, stored.PaymentState)
	})

	t.Run("Unknown transaction is not found and creates nothing", func(t *testing.T) {
		s := newStack(t)

		_, err := s.webhook.Handle(ctx, service.WebhookNotification{TransactionID: "999999", State: "3"})

		assert.Equal(t, constants.ErrCodeTransactionNotFound, service.ErrorCode(err))

		list, err := s.ledger.List(ctx, service.ListTransactionsQuery{Limit: 10})
		require.NoError(t, err)
		assert.Zero(t, list.Total)

		journal, err := s.notifs.List(ctx, repository.NotificationFilter{TransactionID: "999999"})
		require.NoError(t, err)
		require.Len(t, journal, 1)
		assert.Equal(t, model.NotificationOutcomeNotFound, journal[0].Outcome)
	})

	t.Run("Late pending after success is ignored", func(t *testing.T) {
		s := newStack(t)
		s.storefront.AddOrder("123", "", "", "pending")

		tx, err := s.ledger.Create(ctx, createCommand("123"))
		require.NoError(t, err)

		_, err = s.webhook.Handle(ctx, service.WebhookNotification{TransactionID: tx.TransactionID, State: "3"})
		require.NoError(t, err)

		resp, err := s.webhook.Handle(ctx, service.WebhookNotification{TransactionID: tx.TransactionID, State: "2"})
		require.NoError(t, err)

		assert.True(t, resp.Ignored)
		assert.Equal(t, model.PaymentStateSucceeded, resp.NewState)
		assert.Equal(t, "paid", s.storefront.Order("123").Tags.String())

		stored, err := s.ledger.FindByTransactionID(ctx, tx.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentStateSucceeded, stored.PaymentState)
	})

	t.Run("Storefront outage is reported in band", func(t *testing.T) {
		s := newStack(t)
		s.storefront.AddOrder("123", "", "", "pending")
		s.storefront.UpdateErr = storefront.ErrServerError
		s.storefront.MarkAsPaidErr = storefront.ErrServerError

		tx, err := s.ledger.Create(ctx, createCommand("123"))
		require.NoError(t, err)

		resp, err := s.webhook.Handle(ctx, service.WebhookNotification{TransactionID: tx.TransactionID, State: "3"})
		require.NoError(t, err)

		assert.True(t, resp.Success)
		assert.False(t, resp.Propagated)
		assert.Equal(t, service.PaidOutcomeFailed, resp.PaidOutcome)
		assert.NotEmpty(t, resp.Errors)

		stored, err := s.ledger.FindByTransactionID(ctx, tx.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentStateSucceeded, stored.PaymentState)
	})
}

func TestWebhook_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing transaction id is rejected without touching the ledger", func(t *testing.T) {
		reconciler := &mocks.Reconciler{}
		notifs := &mocks.NotificationRepository{}
		svc := service.NewWebhookService(reconciler, notifs, newMetrics(), zap.NewNop())

		notifs.On("Create", ctx, mock.AnythingOfType("*model.Notification")).Return(nil)

		_, err := svc.Handle(ctx, service.WebhookNotification{State: "3"})

		assert.Equal(t, constants.ErrCodeInvalidNotification, service.ErrorCode(err))
		reconciler.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
	})

	t.Run("Missing state is rejected", func(t *testing.T) {
		reconciler := &mocks.Reconciler{}
		notifs := &mocks.NotificationRepository{}
		svc := service.NewWebhookService(reconciler, notifs, newMetrics(), zap.NewNop())

		notifs.On("Create", ctx, mock.Anything).Return(nil)

		_, err := svc.Handle(ctx, service.WebhookNotification{TransactionID: "100001"})

		assert.Equal(t, constants.ErrCodeInvalidNotification, service.ErrorCode(err))
		reconciler.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
	})

	t.Run("Journal failure does not fail the request", func(t *testing.T) {
		reconciler := &mocks.Reconciler{}
		notifs := &mocks.NotificationRepository{}
		svc := service.NewWebhookService(reconciler, notifs, newMetrics(), zap.NewNop())

		notifs.On("Create", ctx, mock.Anything).Return(assert.AnError)
		reconciler.On("Apply", ctx, service.ApplyStateCommand{
			TransactionID:        "100001",
			State:                "3",
			PaymentLinkReference: "PL-1",
			Source:               model.NotificationSourceWebhook,
		}).Return(service.ReconcileResult{TransactionID: "100001", NewState: "3", Label: classifier.LabelPaid}, nil)

		resp, err := svc.Handle(ctx, service.WebhookNotification{TransactionID: " 100001 ", State: "3", PaymentLinkReference: "PL-1"})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		notifs.AssertNotCalled(t, "UpdateOutcome", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		reconciler.AssertExpectations(t)
	})
}
