package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Behyna/paylink-reconciler/internal/classifier"
	"github.com/Behyna/paylink-reconciler/internal/mocks"
	"github.com/Behyna/paylink-reconciler/internal/service"
	"github.com/Behyna/paylink-reconciler/internal/testutil"
	"github.com/Behyna/paylink-reconciler/pkg/storefront"
	"github.com/Behyna/paylink-reconciler/pkg/tagset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLabelReconciler(t *testing.T, client storefront.Client) service.LabelReconciler {
	return service.NewLabelReconciler(client, service.NewVocabulary(labelsConfig), newNarrative(t), zap.NewNop())
}

func TestLabelReconciler_ApplyLabel(t *testing.T) {
	ctx := context.Background()

	t.Run("Replaces the domain label and keeps foreign tags", func(t *testing.T) {
		store := testutil.NewFakeStorefront()
		store.AddOrder("123", "foo,pending", "", "pending")
		labels := newLabelReconciler(t, store)

		require.NoError(t, labels.ApplyLabel(ctx, "123", classifier.LabelPaid))

		assert.Equal(t, "foo,paid", store.Order("123").Tags.String())
	})

	t.Run("Strips legacy and fallback tags case insensitively", func(t *testing.T) {
		store := testutil.NewFakeStorefront()
		store.AddOrder("123", "VIP, Unpaid, processor-paid ,PAID-MARK-FALLBACK,Canceled", "", "")
		labels := newLabelReconciler(t, store)

		require.NoError(t, labels.ApplyLabel(ctx, "123", classifier.LabelPending))

		assert.Equal(t, "VIP,pending", store.Order("123").Tags.String())
	})

	t.Run("Does not write when already labeled", func(t *testing.T) {
		store := testutil.NewFakeStorefront()
		store.AddOrder("123", "foo,paid", "", "paid")
		labels := newLabelReconciler(t, store)

		require.NoError(t, labels.ApplyLabel(ctx, "123", classifier.LabelPaid))

		assert.Equal(t, 0, store.UpdateCalls)
	})

	t.Run("Fetch failure is returned and nothing is written", func(t *testing.T) {
		client := &mocks.StorefrontClient{}
		labels := newLabelReconciler(t, client)

		client.On("GetOrder", ctx, "123").Return(storefront.Order{}, storefront.ErrUnauthorized)

		err := labels.ApplyLabel(ctx, "123", classifier.LabelPaid)

		assert.ErrorIs(t, err, storefront.ErrUnauthorized)
		client.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Write failure is returned", func(t *testing.T) {
		client := &mocks.StorefrontClient{}
		labels := newLabelReconciler(t, client)

		client.On("GetOrder", ctx, "123").Return(storefront.Order{ID: "123", Tags: tagset.Parse("pending")}, nil)
		client.On("UpdateOrder", ctx, "123", mock.MatchedBy(func(u storefront.OrderUpdate) bool {
			return u.Tags != nil && *u.Tags == "canceled" && u.Note == nil
		})).Return(storefront.ErrServerError)

		err := labels.ApplyLabel(ctx, "123", classifier.LabelCanceled)

		assert.ErrorIs(t, err, storefront.ErrServerError)
		client.AssertExpectations(t)
	})

	t.Run("Applies several tags at once", func(t *testing.T) {
		store := testutil.NewFakeStorefront()
		store.AddOrder("123", "foo,pending", "", "")
		labels := newLabelReconciler(t, store)

		require.NoError(t, labels.ApplyLabels(ctx, "123", "paid", "paid-mark-fallback"))

		assert.Equal(t, "foo,paid,paid-mark-fallback", store.Order("123").Tags.String())
	})
}

func TestLabelReconciler_UpsertNarrative(t *testing.T) {
	ctx := context.Background()
	tx := narrativeTransaction()

	t.Run("Pending then paid leaves a single paid block", func(t *testing.T) {
		store := testutil.NewFakeStorefront()
		store.AddOrder("123", "", "Llamar antes de entregar", "")
		labels := newLabelReconciler(t, store)

		require.NoError(t, labels.UpsertNarrative(ctx, "123", tx, classifier.LabelPending))
		require.NoError(t, labels.UpsertNarrative(ctx, "123", tx, classifier.LabelPaid))

		note := store.Order("123").Note
		assert.True(t, strings.HasPrefix(note, "Llamar antes de entregar\n\n"))
		assert.Equal(t, 1, strings.Count(note, "[payment-status]"))
		assert.Contains(t, note, "PAGO CONFIRMADO")
		assert.NotContains(t, note, "PAGO PENDIENTE")
	})

	t.Run("Unchanged note is not rewritten", func(t *testing.T) {
		store := testutil.NewFakeStorefront()
		store.AddOrder("123", "", "", "")
		labels := newLabelReconciler(t, store)

		require.NoError(t, labels.UpsertNarrative(ctx, "123", tx, classifier.LabelPaid))
		require.NoError(t, labels.UpsertNarrative(ctx, "123", tx, classifier.LabelPaid))

		assert.Equal(t, 1, store.UpdateCalls)
	})

	t.Run("Missing order is an error", func(t *testing.T) {
		store := testutil.NewFakeStorefront()
		labels := newLabelReconciler(t, store)

		err := labels.UpsertNarrative(ctx, "404", tx, classifier.LabelPaid)
		assert.True(t, errors.Is(err, storefront.ErrOrderNotFound))
	})
}
