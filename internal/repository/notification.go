package repository

import (
	"context"

	"github.com/Behyna/paylink-reconciler/internal/model"
	"gorm.io/gorm"
)

type NotificationFilter struct {
	TransactionID string
	Limit         int
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	UpdateOutcome(ctx context.Context, id int64, outcome string, detail *string) error
	List(ctx context.Context, filter NotificationFilter) ([]model.Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return GetTx(ctx, r.db).Create(n).Error
}

func (r *notificationRepository) UpdateOutcome(ctx context.Context, id int64, outcome string, detail *string) error {
	result := GetTx(ctx, r.db).Model(&model.Notification{}).
		Where("id = ?", id).
		Updates(map[string]any{"outcome": outcome, "detail": detail})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *notificationRepository) List(ctx context.Context, filter NotificationFilter) ([]model.Notification, error) {
	query := GetTx(ctx, r.db)
	if filter.TransactionID != "" {
		query = query.Where("transaction_id = ?", filter.TransactionID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var notifications []model.Notification
	if err := query.Order("id DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}

	return notifications, nil
}
