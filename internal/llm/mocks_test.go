package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockProvider mocks the Provider interface
type MockProvider struct {
	mock.Mock
	name       string
	configured bool
}

func (m *MockProvider) Name() string              { return m.name }
func (m *MockProvider) AvailableModels() []string { return []string{"test-model"} }
func (m *MockProvider) DefaultModel() string      { return "test-model" }
func (m *MockProvider) IsConfigured() bool        { return m.configured }

func (m *MockProvider) Generate(ctx context.Context, req Request, model string) (*Response, error) {
	args := m.Called(ctx, req, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Response), args.Error(1)
}
