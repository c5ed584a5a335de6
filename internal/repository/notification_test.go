package repository_test

import (
	"context"
	"testing"

	"github.com/Behyna/paylink-reconciler/internal/model"
	"github.com/Behyna/paylink-reconciler/internal/repository"
	"github.com/Behyna/paylink-reconciler/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestNotificationRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewNotificationRepository(testutil.NewDB(t))

	first := &model.Notification{
		Source:        model.NotificationSourceWebhook,
		TransactionID: "100001",
		ReportedState: "3",
		Payload:       datatypes.JSON(`{"transactionId":"100001","state":"3"}`),
		Outcome:       model.NotificationOutcomeReceived,
	}
	require.NoError(t, repo.Create(ctx, first))
	require.NotZero(t, first.ID)

	second := &model.Notification{
		Source:        model.NotificationSourcePoll,
		TransactionID: "100002",
		ReportedState: "4",
		Outcome:       model.NotificationOutcomeReceived,
	}
	require.NoError(t, repo.Create(ctx, second))

	t.Run("Update outcome", func(t *testing.T) {
		detail := "order label failed"
		require.NoError(t, repo.UpdateOutcome(ctx, first.ID, model.NotificationOutcomeApplied, &detail))

		list, err := repo.List(ctx, repository.NotificationFilter{TransactionID: "100001"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, model.NotificationOutcomeApplied, list[0].Outcome)
		require.NotNil(t, list[0].Detail)
		assert.Equal(t, detail, *list[0].Detail)
		assert.JSONEq(t, `{"transactionId":"100001","state":"3"}`, string(list[0].Payload))
	})

	t.Run("Unknown notification", func(t *testing.T) {
		err := repo.UpdateOutcome(ctx, 9999, model.NotificationOutcomeFailed, nil)
		assert.ErrorIs(t, err, repository.ErrNotificationNotFound)
	})

	t.Run("List newest first with limit", func(t *testing.T) {
		list, err := repo.List(ctx, repository.NotificationFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, second.ID, list[0].ID)
	})
}
