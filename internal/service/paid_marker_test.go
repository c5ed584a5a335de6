package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Behyna/paylink-reconciler/internal/classifier"
	"github.com/Behyna/paylink-reconciler/internal/mocks"
	"github.com/Behyna/paylink-reconciler/internal/service"
	"github.com/Behyna/paylink-reconciler/internal/testutil"
	"github.com/Behyna/paylink-reconciler/pkg/storefront"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestPaidMarker_MarkPaid(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	vocabulary := service.NewVocabulary(labelsConfig)
	errNetwork := errors.New("connection reset by peer")

	t.Run("Already paid order skips the primary call", func(t *testing.T) {
		client := &mocks.StorefrontClient{}
		labels := &mocks.LabelReconciler{}
		m := newMetrics()
		marker := service.NewPaidMarker(client, labels, vocabulary, m, logger)

		client.On("GetOrder", ctx, "123").Return(storefront.Order{ID: "123", FinancialStatus: "paid"}, nil)
		labels.On("ApplyLabel", ctx, "123", classifier.LabelPaid).Return(nil)

		result := marker.MarkPaid(ctx, "123")

		assert.Equal(t, service.PaidOutcomeSucceeded, result.Outcome)
		assert.NoError(t, result.Err)
		client.AssertNotCalled(t, "MarkAsPaid", mock.Anything, mock.Anything)
		labels.AssertExpectations(t)
		assert.Equal(t, 1.0, promtestutil.ToFloat64(m.PaidMarkTotal.WithLabelValues("succeeded")))
	})

	t.Run("Primary success applies the paid label", func(t *testing.T) {
		client := &mocks.StorefrontClient{}
		labels := &mocks.LabelReconciler{}
		marker := service.NewPaidMarker(client, labels, vocabulary, newMetrics(), logger)

		client.On("GetOrder", ctx, "123").Return(storefront.Order{ID: "123", FinancialStatus: "pending"}, nil)
		client.On("MarkAsPaid", ctx, "123").Return(storefront.MarkAsPaidResult{OrderGID: "gid://shopify/Order/123"}, nil)
		labels.On("ApplyLabel", ctx, "123", classifier.LabelPaid).Return(nil)

		result := marker.MarkPaid(ctx, "123")

		assert.Equal(t, service.PaidOutcomeSucceeded, result.Outcome)
		assert.NoError(t, result.LabelErr)
		client.AssertNumberOfCalls(t, "MarkAsPaid", 1)
		labels.AssertNotCalled(t, "ApplyLabels", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Paid label failure keeps the succeeded outcome", func(t *testing.T) {
		client := &mocks.StorefrontClient{}
		labels := &mocks.LabelReconciler{}
		marker := service.NewPaidMarker(client, labels, vocabulary, newMetrics(), logger)

		client.On("GetOrder", ctx, "123").Return(storefront.Order{ID: "123"}, nil)
		client.On("MarkAsPaid", ctx, "123").Return(storefront.MarkAsPaidResult{}, nil)
		labels.On("ApplyLabel", ctx, "123", classifier.LabelPaid).Return(storefront.ErrRateLimited)

		result := marker.MarkPaid(ctx, "123")

		assert.Equal(t, service.PaidOutcomeSucceeded, result.Outcome)
		assert.ErrorIs(t, result.LabelErr, storefront.ErrRateLimited)
	})

	t.Run("Primary failure falls back to the fallback label", func(t *testing.T) {
		client := &mocks.StorefrontClient{}
		labels := &mocks.LabelReconciler{}
		marker := service.NewPaidMarker(client, labels, vocabulary, newMetrics(), logger)

		client.On("GetOrder", ctx, "123").Return(storefront.Order{ID: "123"}, nil)
		client.On("MarkAsPaid", ctx, "123").Return(storefront.MarkAsPaidResult{}, errNetwork)
		labels.On("ApplyLabels", ctx, "123", []string{"paid", "paid-mark-fallback"}).Return(nil)

		result := marker.MarkPaid(ctx, "123")

		assert.Equal(t, service.PaidOutcomeDegraded, result.Outcome)
		assert.ErrorIs(t, result.Err, errNetwork)
		labels.AssertExpectations(t)
	})

	t.Run("User errors count as primary failure", func(t *testing.T) {
		store := testutil.NewFakeStorefront()
		store.AddOrder("123", "pending", "", "pending")
		store.MarkAsPaidErr = &storefront.UserErrorsError{Errors: []storefront.UserError{{Message: "Order cannot be marked as paid"}}}
		labels := newLabelReconciler(t, store)
		marker := service.NewPaidMarker(store, labels, vocabulary, newMetrics(), logger)

		result := marker.MarkPaid(ctx, "123")

		assert.Equal(t, service.PaidOutcomeDegraded, result.Outcome)
		assert.ErrorIs(t, result.Err, storefront.ErrUserErrors)
		assert.Equal(t, "paid,paid-mark-fallback", store.Order("123").Tags.String())
		assert.Equal(t, "pending", store.Order("123").FinancialStatus)
	})

	t.Run("Fallback failure is failed", func(t *testing.T) {
		client := &mocks.StorefrontClient{}
		labels := &mocks.LabelReconciler{}
		marker := service.NewPaidMarker(client, labels, vocabulary, newMetrics(), logger)

		client.On("GetOrder", ctx, "123").Return(storefront.Order{ID: "123"}, nil)
		client.On("MarkAsPaid", ctx, "123").Return(storefront.MarkAsPaidResult{}, storefront.ErrTimeout)
		labels.On("ApplyLabels", ctx, "123", mock.Anything).Return(storefront.ErrTimeout)

		result := marker.MarkPaid(ctx, "123")

		assert.Equal(t, service.PaidOutcomeFailed, result.Outcome)
		assert.ErrorIs(t, result.Err, storefront.ErrTimeout)
		assert.Error(t, result.LabelErr)
	})

	t.Run("Unreadable order still tries the primary path", func(t *testing.T) {
		client := &mocks.StorefrontClient{}
		labels := &mocks.LabelReconciler{}
		marker := service.NewPaidMarker(client, labels, vocabulary, newMetrics(), logger)

		client.On("GetOrder", ctx, "123").Return(storefront.Order{}, storefront.ErrServerError)
		client.On("MarkAsPaid", ctx, "123").Return(storefront.MarkAsPaidResult{}, nil)
		labels.On("ApplyLabel", ctx, "123", classifier.LabelPaid).Return(nil)

		result := marker.MarkPaid(ctx, "123")

		assert.Equal(t, service.PaidOutcomeSucceeded, result.Outcome)
		client.AssertNumberOfCalls(t, "MarkAsPaid", 1)
	})
}
