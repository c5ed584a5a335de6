package mocks

import (
	"context"
	"time"

	"github.com/Behyna/paylink-reconciler/internal/model"
	"github.com/Behyna/paylink-reconciler/internal/repository"
	"github.com/stretchr/testify/mock"
)

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *TransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*model.Transaction, error) {
	args := m.Called(ctx, transactionID)
	tx, _ := args.Get(0).(*model.Transaction)
	return tx, args.Error(1)
}

func (m *TransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Transaction, error) {
	args := m.Called(ctx, orderID)
	tx, _ := args.Get(0).(*model.Transaction)
	return tx, args.Error(1)
}

func (m *TransactionRepository) UpdateState(ctx context.Context, update repository.StateUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *TransactionRepository) AttachPaymentLink(ctx context.Context, transactionID, reference, address string) error {
	args := m.Called(ctx, transactionID, reference, address)
	return args.Error(0)
}

func (m *TransactionRepository) List(ctx context.Context, filter repository.TransactionFilter) ([]model.Transaction, int64, error) {
	args := m.Called(ctx, filter)
	txs, _ := args.Get(0).([]model.Transaction)
	return txs, args.Get(1).(int64), args.Error(2)
}

func (m *TransactionRepository) FindPollCandidates(ctx context.Context, since *time.Time, limit int) ([]model.Transaction, error) {
	args := m.Called(ctx, since, limit)
	txs, _ := args.Get(0).([]model.Transaction)
	return txs, args.Error(1)
}
