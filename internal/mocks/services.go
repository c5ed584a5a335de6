package mocks

import (
	"context"
	"time"

	"github.com/Behyna/paylink-reconciler/internal/classifier"
	"github.com/Behyna/paylink-reconciler/internal/model"
	"github.com/Behyna/paylink-reconciler/internal/service"
	"github.com/stretchr/testify/mock"
)

type LedgerService struct {
	mock.Mock
}

func (m *LedgerService) Create(ctx context.Context, cmd service.CreateTransactionCommand) (*model.Transaction, error) {
	args := m.Called(ctx, cmd)
	tx, _ := args.Get(0).(*model.Transaction)
	return tx, args.Error(1)
}

func (m *LedgerService) FindByTransactionID(ctx context.Context, transactionID string) (*model.Transaction, error) {
	args := m.Called(ctx, transactionID)
	tx, _ := args.Get(0).(*model.Transaction)
	return tx, args.Error(1)
}

func (m *LedgerService) FindByOrderID(ctx context.Context, orderID string) (*model.Transaction, error) {
	args := m.Called(ctx, orderID)
	tx, _ := args.Get(0).(*model.Transaction)
	return tx, args.Error(1)
}

func (m *LedgerService) UpdateState(ctx context.Context, cmd service.UpdateStateCommand) (*model.Transaction, error) {
	args := m.Called(ctx, cmd)
	tx, _ := args.Get(0).(*model.Transaction)
	return tx, args.Error(1)
}

func (m *LedgerService) AttachPaymentLink(ctx context.Context, transactionID, reference, address string) (*model.Transaction, error) {
	args := m.Called(ctx, transactionID, reference, address)
	tx, _ := args.Get(0).(*model.Transaction)
	return tx, args.Error(1)
}

func (m *LedgerService) List(ctx context.Context, query service.ListTransactionsQuery) (service.ListTransactionsResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(service.ListTransactionsResponse), args.Error(1)
}

func (m *LedgerService) FindPollCandidates(ctx context.Context, query service.PollCandidatesQuery) ([]model.Transaction, error) {
	args := m.Called(ctx, query)
	txs, _ := args.Get(0).([]model.Transaction)
	return txs, args.Error(1)
}

type LabelReconciler struct {
	mock.Mock
}

func (m *LabelReconciler) ApplyLabel(ctx context.Context, orderID string, label classifier.Label) error {
	args := m.Called(ctx, orderID, label)
	return args.Error(0)
}

func (m *LabelReconciler) ApplyLabels(ctx context.Context, orderID string, tags ...string) error {
	args := m.Called(ctx, orderID, tags)
	return args.Error(0)
}

func (m *LabelReconciler) UpsertNarrative(ctx context.Context, orderID string, tx model.Transaction, label classifier.Label) error {
	args := m.Called(ctx, orderID, tx, label)
	return args.Error(0)
}

type PaidMarker struct {
	mock.Mock
}

func (m *PaidMarker) MarkPaid(ctx context.Context, orderID string) service.PaidResult {
	args := m.Called(ctx, orderID)
	return args.Get(0).(service.PaidResult)
}

type Reconciler struct {
	mock.Mock
}

func (m *Reconciler) Apply(ctx context.Context, cmd service.ApplyStateCommand) (service.ReconcileResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.ReconcileResult), args.Error(1)
}

type WebhookService struct {
	mock.Mock
}

func (m *WebhookService) Handle(ctx context.Context, n service.WebhookNotification) (service.WebhookResponse, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(service.WebhookResponse), args.Error(1)
}

type PollerService struct {
	mock.Mock
}

func (m *PollerService) Poll(ctx context.Context, tx model.Transaction) (bool, error) {
	args := m.Called(ctx, tx)
	return args.Bool(0), args.Error(1)
}

func (m *PollerService) PollByTransactionID(ctx context.Context, transactionID string) (service.PollBatchResult, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(service.PollBatchResult), args.Error(1)
}

func (m *PollerService) PollPending(ctx context.Context, limit int) (service.PollBatchResult, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).(service.PollBatchResult), args.Error(1)
}

func (m *PollerService) PollSince(ctx context.Context, since time.Time, limit int) (service.PollBatchResult, error) {
	args := m.Called(ctx, since, limit)
	return args.Get(0).(service.PollBatchResult), args.Error(1)
}

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, query service.ListNotificationsQuery) ([]model.Notification, error) {
	args := m.Called(ctx, query)
	notifications, _ := args.Get(0).([]model.Notification)
	return notifications, args.Error(1)
}
