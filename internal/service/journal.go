package service

import (
	"context"

	"github.com/Behyna/paylink-reconciler/internal/constants"
	"github.com/Behyna/paylink-reconciler/internal/model"
	"github.com/Behyna/paylink-reconciler/internal/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const defaultNotificationLimit = 50

// journal records inbound state reports. Failures are logged and never
// block processing.
type journal struct {
	repo   repository.NotificationRepository
	logger *zap.Logger
}

func (j journal) open(ctx context.Context, source, transactionID, state string, payload []byte) int64 {
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	n := model.Notification{
		Source:        source,
		TransactionID: transactionID,
		ReportedState: state,
		Payload:       datatypes.JSON(payload),
		Outcome:       model.NotificationOutcomeReceived,
	}
	if err := j.repo.Create(ctx, &n); err != nil {
		j.logger.Error("Failed to journal notification",
			zap.String("source", source),
			zap.String("transactionID", transactionID),
			zap.Error(err))
		return 0
	}

	return n.ID
}

func (j journal) close(ctx context.Context, id int64, outcome string, detail string) {
	if id == 0 {
		return
	}

	var d *string
	if detail != "" {
		d = &detail
	}

	if err := j.repo.UpdateOutcome(ctx, id, outcome, d); err != nil {
		j.logger.Error("Failed to record notification outcome", zap.Int64("notificationID", id), zap.Error(err))
	}
}

// outcomeFor maps a reconcile result or error to a journal outcome.
func outcomeFor(result ReconcileResult, err error) string {
	switch {
	case err == nil && result.Ignored:
		return model.NotificationOutcomeIgnored
	case err == nil:
		return model.NotificationOutcomeApplied
	case ErrorCode(err) == constants.ErrCodeTransactionNotFound:
		return model.NotificationOutcomeNotFound
	case ErrorCode(err) == constants.ErrCodeInvalidNotification:
		return model.NotificationOutcomeRejected
	default:
		return model.NotificationOutcomeFailed
	}
}

// NotificationService exposes the journal to operators.
type NotificationService interface {
	List(ctx context.Context, query ListNotificationsQuery) ([]model.Notification, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, query ListNotificationsQuery) ([]model.Notification, error) {
	if query.Limit <= 0 {
		query.Limit = defaultNotificationLimit
	}

	notifications, err := s.repo.List(ctx, repository.NotificationFilter{
		TransactionID: query.TransactionID,
		Limit:         query.Limit,
	})
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeDatabase, err)
	}

	return notifications, nil
}
