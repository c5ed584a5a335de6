package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SequenceRepository struct {
	mock.Mock
}

func (m *SequenceRepository) Ensure(ctx context.Context, name string, start int64) error {
	args := m.Called(ctx, name, start)
	return args.Error(0)
}

func (m *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}
