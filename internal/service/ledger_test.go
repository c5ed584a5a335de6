package service_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/Behyna/paylink-reconciler/internal/constants"
	"github.com/Behyna/paylink-reconciler/internal/mocks"
	"github.com/Behyna/paylink-reconciler/internal/model"
	"github.com/Behyna/paylink-reconciler/internal/repository"
	"github.com/Behyna/paylink-reconciler/internal/service"
	"github.com/Behyna/paylink-reconciler/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func createCommand(orderID string) service.CreateTransactionCommand {
	return service.CreateTransactionCommand{
		OrderID:              orderID,
		Amount:               decimal.RequireFromString("15.00"),
		Currency:             "pen",
		CustomerEmail:        "ana@example.com",
		CustomerName:         "Ana",
		PaymentLinkReference: "PL-1",
		PaymentLinkAddress:   "https://pay.example/PL-1",
	}
}

func TestLedger_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a generated transaction with the next sequence value", func(t *testing.T) {
		s := newStack(t)

		tx, err := s.ledger.Create(ctx, createCommand("123"))
		require.NoError(t, err)

		assert.Equal(t, strconv.FormatInt(testutil.SequenceStart+1, 10), tx.TransactionID)
		assert.Equal(t, model.PaymentStateGenerated, tx.PaymentState)
		assert.Equal(t, "PEN", tx.Currency)
		assert.Equal(t, "123", tx.Order())
		assert.Equal(t, int64(1), tx.Version)

		stored, err := s.ledger.FindByTransactionID(ctx, tx.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, "15.00", stored.Amount.StringFixed(2))
	})

	t.Run("Order id is optional", func(t *testing.T) {
		s := newStack(t)

		tx, err := s.ledger.Create(ctx, createCommand(""))
		require.NoError(t, err)
		assert.Nil(t, tx.OrderID)
	})

	t.Run("Rejects non positive amounts", func(t *testing.T) {
		s := newStack(t)
		cmd := createCommand("123")
		cmd.Amount = decimal.Zero

		_, err := s.ledger.Create(ctx, cmd)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeInvalidTransaction, serviceErr.Code)
	})

	t.Run("Rejects missing currency", func(t *testing.T) {
		s := newStack(t)
		cmd := createCommand("123")
		cmd.Currency = " "

		_, err := s.ledger.Create(ctx, cmd)
		assert.Equal(t, constants.ErrCodeInvalidTransaction, service.ErrorCode(err))
	})

	t.Run("Concurrent creates get distinct consecutive ids", func(t *testing.T) {
		s := newStack(t)
		const n = 50

		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			ids = make(map[string]struct{}, n)
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tx, err := s.ledger.Create(ctx, createCommand(""))
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				ids[tx.TransactionID] = struct{}{}
				mu.Unlock()
			}()
		}
		wg.Wait()

		require.Len(t, ids, n)
		for i := int64(1); i <= n; i++ {
			assert.Contains(t, ids, strconv.FormatInt(testutil.SequenceStart+i, 10))
		}
	})

	t.Run("Sequence failure is a database error and nothing is inserted", func(t *testing.T) {
		txRepo := &mocks.TransactionRepository{}
		seqRepo := &mocks.SequenceRepository{}
		txManager := &mocks.TxManager{}
		ledger := service.NewLedgerService(txRepo, seqRepo, txManager, testutil.LedgerConfig, newMetrics(), zap.NewNop())

		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		seqRepo.On("Next", mock.Anything, testutil.SequenceName).Return(int64(0), repository.ErrSequenceNotFound)

		_, err := ledger.Create(ctx, createCommand("123"))

		assert.Equal(t, constants.ErrCodeDatabase, service.ErrorCode(err))
		assert.ErrorIs(t, err, repository.ErrSequenceNotFound)
		txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		seqRepo.AssertExpectations(t)
	})
}

func TestLedger_Find(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	first, err := s.ledger.Create(ctx, createCommand("123"))
	require.NoError(t, err)
	second, err := s.ledger.Create(ctx, createCommand("123"))
	require.NoError(t, err)

	t.Run("By order returns the most recent transaction", func(t *testing.T) {
		tx, err := s.ledger.FindByOrderID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, second.TransactionID, tx.TransactionID)
		assert.NotEqual(t, first.TransactionID, tx.TransactionID)
	})

	t.Run("Unknown ids are not found", func(t *testing.T) {
		_, err := s.ledger.FindByTransactionID(ctx, "1")
		assert.Equal(t, constants.ErrCodeTransactionNotFound, service.ErrorCode(err))

		_, err = s.ledger.FindByOrderID(ctx, "999")
		assert.Equal(t, constants.ErrCodeTransactionNotFound, service.ErrorCode(err))
	})

	t.Run("List filters by state and order", func(t *testing.T) {
		resp, err := s.ledger.List(ctx, service.ListTransactionsQuery{State: "GENERATED", OrderID: "123", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Total)
		assert.Len(t, resp.Transactions, 2)
	})
}

func TestLedger_UpdateState(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	created, err := s.ledger.Create(ctx, createCommand("123"))
	require.NoError(t, err)

	t.Run("Overwrites state and stamps the notification time", func(t *testing.T) {
		tx, err := s.ledger.UpdateState(ctx, service.UpdateStateCommand{
			TransactionID:        created.TransactionID,
			State:                "IN_PROGRESS",
			PaymentLinkReference: "PL-2",
		})
		require.NoError(t, err)

		assert.Equal(t, model.PaymentStateInProgress, tx.PaymentState)
		assert.Equal(t, "PL-2", tx.PaymentLinkReference)
		assert.Equal(t, int64(2), tx.Version)
		assert.NotNil(t, tx.LastNotificationAt)
	})

	t.Run("Stale expected version is a state conflict", func(t *testing.T) {
		_, err := s.ledger.UpdateState(ctx, service.UpdateStateCommand{
			TransactionID:   created.TransactionID,
			State:           "3",
			ExpectedVersion: 1,
		})
		assert.Equal(t, constants.ErrCodeStateConflict, service.ErrorCode(err))
	})

	t.Run("Unknown transaction", func(t *testing.T) {
		_, err := s.ledger.UpdateState(ctx, service.UpdateStateCommand{TransactionID: "42", State: "3"})
		assert.Equal(t, constants.ErrCodeTransactionNotFound, service.ErrorCode(err))
	})

	t.Run("Unknown raw state is stored verbatim", func(t *testing.T) {
		tx, err := s.ledger.UpdateState(ctx, service.UpdateStateCommand{TransactionID: created.TransactionID, State: "9"})
		require.NoError(t, err)
		assert.Equal(t, model.PaymentState("9"), tx.PaymentState)
	})
}

func TestLedger_AttachPaymentLink(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	cmd := createCommand("")
	cmd.PaymentLinkReference, cmd.PaymentLinkAddress = "", ""
	created, err := s.ledger.Create(ctx, cmd)
	require.NoError(t, err)

	tx, err := s.ledger.AttachPaymentLink(ctx, created.TransactionID, "PL-9", "https://pay.example/PL-9")
	require.NoError(t, err)
	assert.Equal(t, "PL-9", tx.PaymentLinkReference)
	assert.Equal(t, "https://pay.example/PL-9", tx.PaymentLinkAddress)

	_, err = s.ledger.AttachPaymentLink(ctx, "nope", "x", "y")
	assert.Equal(t, constants.ErrCodeTransactionNotFound, service.ErrorCode(err))
}
