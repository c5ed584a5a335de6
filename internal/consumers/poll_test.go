package consumers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Behyna/paylink-reconciler/internal/constants"
	"github.com/Behyna/paylink-reconciler/internal/consumers"
	"github.com/Behyna/paylink-reconciler/internal/mocks"
	"github.com/Behyna/paylink-reconciler/internal/service"
	"github.com/Behyna/paylink-reconciler/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var cfg = mq.Config{PollQueue: "payment.poll", Prefetch: 4}

// captureHandler runs Consume against a mock consumer and returns the
// registered message handler.
func captureHandler(t *testing.T, poller *mocks.PollerService) mq.Handle {
	t.Helper()

	var handler mq.Handle
	consumer := new(mocks.Consumer)
	consumer.On("Consume", mock.Anything, 4, "payment.poll", mock.Anything).
		Run(func(args mock.Arguments) {
			handler = args.Get(3).(mq.Handle)
		}).
		Return(nil)

	require.NoError(t, consumers.NewPollConsumer(poller, consumer, cfg, zap.NewNop()).Consume(context.Background()))
	consumer.AssertExpectations(t)
	require.NotNil(t, handler)

	return handler
}

func TestPollConsumer_HandleMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Polls the named transaction", func(t *testing.T) {
		poller := new(mocks.PollerService)
		poller.On("PollByTransactionID", mock.Anything, "100001").
			Return(service.PollBatchResult{Checked: 1, Updated: 1}, nil)

		err := captureHandler(t, poller)(ctx, []byte(`{"transaction_id":"100001"}`))

		assert.NoError(t, err)
		poller.AssertExpectations(t)
	})

	t.Run("Database errors are requeued", func(t *testing.T) {
		poller := new(mocks.PollerService)
		poller.On("PollByTransactionID", mock.Anything, "100001").
			Return(service.PollBatchResult{}, service.NewServiceError(constants.ErrCodeDatabase, errors.New("gone")))

		err := captureHandler(t, poller)(ctx, []byte(`{"transaction_id":"100001"}`))

		require.Error(t, err)
		assert.True(t, mq.ShouldRequeue(err))
	})

	t.Run("Processor outage is acked", func(t *testing.T) {
		poller := new(mocks.PollerService)
		poller.On("PollByTransactionID", mock.Anything, "100001").
			Return(service.PollBatchResult{}, service.NewServiceError(constants.ErrCodeProcessorUnavailable, errors.New("timeout")))

		err := captureHandler(t, poller)(ctx, []byte(`{"transaction_id":"100001"}`))

		assert.NoError(t, err)
	})

	t.Run("Unknown transaction is acked", func(t *testing.T) {
		poller := new(mocks.PollerService)
		poller.On("PollByTransactionID", mock.Anything, "999999").
			Return(service.PollBatchResult{}, service.NewServiceError(constants.ErrCodeTransactionNotFound, nil))

		err := captureHandler(t, poller)(ctx, []byte(`{"transaction_id":"999999"}`))

		assert.NoError(t, err)
	})

	t.Run("Malformed body is rejected without requeue", func(t *testing.T) {
		poller := new(mocks.PollerService)

		err := captureHandler(t, poller)(ctx, []byte(`not-json`))

		require.Error(t, err)
		assert.False(t, mq.ShouldRequeue(err))
		poller.AssertNotCalled(t, "PollByTransactionID", mock.Anything, mock.Anything)
	})
}
