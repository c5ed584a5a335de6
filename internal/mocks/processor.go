package mocks

import (
	"context"

	"github.com/Behyna/paylink-reconciler/pkg/processor"
	"github.com/stretchr/testify/mock"
)

type ProcessorClient struct {
	mock.Mock
}

func (m *ProcessorClient) GenerateToken(ctx context.Context, requestID string) (string, error) {
	args := m.Called(ctx, requestID)
	return args.String(0), args.Error(1)
}

func (m *ProcessorClient) SearchPaymentLink(ctx context.Context, paymentLinkID string) (processor.PaymentLink, error) {
	args := m.Called(ctx, paymentLinkID)
	return args.Get(0).(processor.PaymentLink), args.Error(1)
}
