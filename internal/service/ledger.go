package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Behyna/paylink-reconciler/internal/config"
	"github.com/Behyna/paylink-reconciler/internal/constants"
	"github.com/Behyna/paylink-reconciler/internal/metrics"
	"github.com/Behyna/paylink-reconciler/internal/model"
	"github.com/Behyna/paylink-reconciler/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrMissingCurrency = errors.New("currency is required")
	ErrMissingState    = errors.New("state is required")
)

type LedgerService interface {
	Create(ctx context.Context, cmd CreateTransactionCommand) (*model.Transaction, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*model.Transaction, error)
	FindByOrderID(ctx context.Context, orderID string) (*model.Transaction, error)
	UpdateState(ctx context.Context, cmd UpdateStateCommand) (*model.Transaction, error)
	AttachPaymentLink(ctx context.Context, transactionID, reference, address string) (*model.Transaction, error)
	List(ctx context.Context, query ListTransactionsQuery) (ListTransactionsResponse, error)
	FindPollCandidates(ctx context.Context, query PollCandidatesQuery) ([]model.Transaction, error)
}

type ledger struct {
	txRepo    repository.TransactionRepository
	seqRepo   repository.SequenceRepository
	txManager repository.TxManager
	sequence  string
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

func NewLedgerService(txRepo repository.TransactionRepository, seqRepo repository.SequenceRepository,
	txManager repository.TxManager, cfg config.Ledger, metrics *metrics.Metrics, logger *zap.Logger) LedgerService {
	return &ledger{
		txRepo:    txRepo,
		seqRepo:   seqRepo,
		txManager: txManager,
		sequence:  cfg.SequenceName,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

func (l *ledger) Create(ctx context.Context, cmd CreateTransactionCommand) (*model.Transaction, error) {
	if !cmd.Amount.IsPositive() {
		return nil, NewServiceError(constants.ErrCodeInvalidTransaction, ErrInvalidAmount)
	}

	currency := strings.ToUpper(strings.TrimSpace(cmd.Currency))
	if currency == "" {
		return nil, NewServiceError(constants.ErrCodeInvalidTransaction, ErrMissingCurrency)
	}

	tx := model.Transaction{
		PaymentState:         model.PaymentStateGenerated,
		Amount:               cmd.Amount.Round(2),
		Currency:             currency,
		CustomerEmail:        cmd.CustomerEmail,
		CustomerName:         cmd.CustomerName,
		PaymentLinkReference: cmd.PaymentLinkReference,
		PaymentLinkAddress:   cmd.PaymentLinkAddress,
		Version:              1,
	}
	if orderID := strings.TrimSpace(cmd.OrderID); orderID != "" {
		tx.OrderID = &orderID
	}

	err := l.txManager.WithTx(ctx, func(ctx context.Context) error {
		value, err := l.seqRepo.Next(ctx, l.sequence)
		if err != nil {
			l.logger.Error("Failed to allocate transaction id", zap.String("sequence", l.sequence), zap.Error(err))
			return NewServiceError(constants.ErrCodeDatabase, err)
		}

		tx.TransactionID = strconv.FormatInt(value, 10)

		if err := l.txRepo.Create(ctx, &tx); err != nil {
			if errors.Is(err, repository.ErrTransactionDuplicate) {
				return NewServiceError(constants.ErrCodeDuplicateTransaction, err)
			}
			l.logger.Error("Failed to create transaction", zap.Error(err))
			return NewServiceError(constants.ErrCodeDatabase, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	l.metrics.RecordTransactionCreated()
	l.logger.Info("Transaction created successfully",
		zap.String("transactionID", tx.TransactionID),
		zap.String("orderID", tx.Order()),
		zap.String("amount", tx.Amount.StringFixed(2)),
		zap.String("currency", tx.Currency))

	return &tx, nil
}

func (l *ledger) FindByTransactionID(ctx context.Context, transactionID string) (*model.Transaction, error) {
	tx, err := l.txRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, l.mapLookupError(err)
	}

	return tx, nil
}

func (l *ledger) FindByOrderID(ctx context.Context, orderID string) (*model.Transaction, error) {
	tx, err := l.txRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, l.mapLookupError(err)
	}

	return tx, nil
}

func (l *ledger) UpdateState(ctx context.Context, cmd UpdateStateCommand) (*model.Transaction, error) {
	state := model.ParsePaymentState(cmd.State)
	if state == "" {
		return nil, NewServiceError(constants.ErrCodeInvalidNotification, ErrMissingState)
	}

	current, err := l.FindByTransactionID(ctx, cmd.TransactionID)
	if err != nil {
		return nil, err
	}

	expected := cmd.ExpectedVersion
	if expected == 0 {
		expected = current.Version
	}

	err = l.txRepo.UpdateState(ctx, repository.StateUpdate{
		ID:                   current.ID,
		State:                state,
		PaymentLinkReference: cmd.PaymentLinkReference,
		ExpectedVersion:      expected,
		NotifiedAt:           l.now(),
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrVersionConflict):
			l.metrics.RecordStateConflict()
			l.logger.Warn("Transaction changed concurrently",
				zap.String("transactionID", cmd.TransactionID),
				zap.Int64("expectedVersion", expected))
			return nil, NewServiceError(constants.ErrCodeStateConflict, err)
		default:
			return nil, l.mapLookupError(err)
		}
	}

	l.metrics.RecordStateTransition(current.PaymentState.Name(), state.Name())

	return l.FindByTransactionID(ctx, cmd.TransactionID)
}

func (l *ledger) AttachPaymentLink(ctx context.Context, transactionID, reference, address string) (*model.Transaction, error) {
	if err := l.txRepo.AttachPaymentLink(ctx, transactionID, reference, address); err != nil {
		return nil, l.mapLookupError(err)
	}

	l.logger.Info("Payment link attached",
		zap.String("transactionID", transactionID),
		zap.String("reference", reference))

	return l.FindByTransactionID(ctx, transactionID)
}

func (l *ledger) List(ctx context.Context, query ListTransactionsQuery) (ListTransactionsResponse, error) {
	txs, total, err := l.txRepo.List(ctx, repository.TransactionFilter{
		State:   model.ParsePaymentState(query.State),
		OrderID: query.OrderID,
		Limit:   query.Limit,
		Offset:  query.Offset,
	})
	if err != nil {
		l.logger.Error("Failed to list transactions", zap.Error(err))
		return ListTransactionsResponse{}, NewServiceError(constants.ErrCodeDatabase, err)
	}

	return ListTransactionsResponse{Transactions: txs, Total: total}, nil
}

func (l *ledger) FindPollCandidates(ctx context.Context, query PollCandidatesQuery) ([]model.Transaction, error) {
	txs, err := l.txRepo.FindPollCandidates(ctx, query.Since, query.Limit)
	if err != nil {
		l.logger.Error("Failed to find poll candidates", zap.Error(err))
		return nil, NewServiceError(constants.ErrCodeDatabase, err)
	}

	return txs, nil
}

func (l *ledger) mapLookupError(err error) error {
	if errors.Is(err, repository.ErrTransactionNotFound) {
		return NewServiceError(constants.ErrCodeTransactionNotFound, err)
	}

	l.logger.Error("Ledger query failed", zap.Error(err))
	return NewServiceError(constants.ErrCodeDatabase, err)
}
