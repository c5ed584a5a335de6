package mocks

import (
	"context"

	"github.com/Behyna/paylink-reconciler/pkg/storefront"
	"github.com/stretchr/testify/mock"
)

type StorefrontClient struct {
	mock.Mock
}

func (m *StorefrontClient) GetOrder(ctx context.Context, orderID string) (storefront.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(storefront.Order), args.Error(1)
}

func (m *StorefrontClient) UpdateOrder(ctx context.Context, orderID string, update storefront.OrderUpdate) error {
	args := m.Called(ctx, orderID, update)
	return args.Error(0)
}

func (m *StorefrontClient) MarkAsPaid(ctx context.Context, orderID string) (storefront.MarkAsPaidResult, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(storefront.MarkAsPaidResult), args.Error(1)
}
