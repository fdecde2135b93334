package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"legalynx/internal/port"
)

// MockReasoningEngine is a mock implementation of port.ReasoningEngine.
type MockReasoningEngine struct {
	mock.Mock
}

func (m *MockReasoningEngine) Complete(ctx context.Context, input port.CompletionInput) (*port.CompletionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CompletionOutput), args.Error(1)
}
