package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"legalynx/internal/domain"
)

// MockBulkService is a mock implementation of service.BulkService.
type MockBulkService struct {
	mock.Mock
}

func (m *MockBulkService) AnalyzeBatch(ctx context.Context, items []domain.BatchItem) ([]domain.BatchItemResult, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BatchItemResult), args.Error(1)
}

func (m *MockBulkService) ExportBatch(ctx context.Context, items []domain.BatchItem) ([]byte, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
