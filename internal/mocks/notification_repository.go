package mocks

import (
	"context"

	"github.com/Behyna/paylink-reconciler/internal/model"
	"github.com/Behyna/paylink-reconciler/internal/repository"
	"github.com/stretchr/testify/mock"
)

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotificationRepository) UpdateOutcome(ctx context.Context, id int64, outcome string, detail *string) error {
	args := m.Called(ctx, id, outcome, detail)
	return args.Error(0)
}

func (m *NotificationRepository) List(ctx context.Context, filter repository.NotificationFilter) ([]model.Notification, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]model.Notification)
	return list, args.Error(1)
}
