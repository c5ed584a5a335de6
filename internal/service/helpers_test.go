package service_test

import (
	"testing"

	"github.com/Behyna/paylink-reconciler/internal/config"
	"github.com/Behyna/paylink-reconciler/internal/metrics"
	"github.com/Behyna/paylink-reconciler/internal/repository"
	"github.com/Behyna/paylink-reconciler/internal/service"
	"github.com/Behyna/paylink-reconciler/internal/testutil"
	"github.com/Behyna/paylink-reconciler/pkg/processor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var labelsConfig = config.Labels{
	Pending:  "pending",
	Paid:     "paid",
	Canceled: "canceled",
	Legacy:   []string{"unpaid", "processor-paid"},
	Fallback: "paid-mark-fallback",
}

var narrativeConfig = config.Narrative{
	StartMarker: "[payment-status]",
	EndMarker:   "[/payment-status]",
	Timezone:    "America/Lima",
}

func newMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

func newNarrative(t *testing.T) *service.Narrative {
	t.Helper()
	n, err := service.NewNarrative(narrativeConfig)
	require.NoError(t, err)
	return n
}

// stack wires the real pipeline over sqlite and a fake storefront.
type stack struct {
	db         *gorm.DB
	storefront *testutil.FakeStorefront
	ledger     service.LedgerService
	reconciler service.Reconciler
	webhook    service.WebhookService
	notifs     repository.NotificationRepository
	metrics    *metrics.Metrics
}

func newStack(t *testing.T) *stack {
	t.Helper()

	logger := zap.NewNop()
	m := newMetrics()
	db := testutil.NewDB(t)
	store := testutil.NewFakeStorefront()
	vocabulary := service.NewVocabulary(labelsConfig)

	ledger := service.NewLedgerService(
		repository.NewTransactionRepository(db),
		repository.NewSequenceRepository(db),
		repository.NewTransactionManager(db),
		testutil.LedgerConfig, m, logger)
	labels := service.NewLabelReconciler(store, vocabulary, newNarrative(t), logger)
	paid := service.NewPaidMarker(store, labels, vocabulary, m, logger)
	reconciler := service.NewReconciler(ledger, labels, paid, vocabulary, m, logger)
	notifs := repository.NewNotificationRepository(db)

	return &stack{
		db:         db,
		storefront: store,
		ledger:     ledger,
		reconciler: reconciler,
		webhook:    service.NewWebhookService(reconciler, notifs, m, logger),
		notifs:     notifs,
		metrics:    m,
	}
}

func (s *stack) poller(client processor.Client) service.PollerService {
	return service.NewPollerService(s.ledger, client, s.reconciler, s.notifs, s.metrics, zap.NewNop())
}
