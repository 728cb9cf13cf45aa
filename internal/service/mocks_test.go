package service

import (
	"context"

	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockReservationRepository mocks the ReservationRepository interface
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) ListRecent(ctx context.Context, limit int) ([]domain.Reservation, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, code string, status domain.ReservationStatus) error {
	args := m.Called(ctx, code, status)
	return args.Error(0)
}

func (m *MockReservationRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockReservationCache mocks the ReservationCache interface
type MockReservationCache struct {
	mock.Mock
}

func (m *MockReservationCache) Get(ctx context.Context, code string) (*domain.Reservation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationCache) Set(ctx context.Context, reservation *domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationCache) Invalidate(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

// MockConversationLogRepository mocks the ConversationLogRepository interface
type MockConversationLogRepository struct {
	mock.Mock
}

func (m *MockConversationLogRepository) Append(ctx context.Context, entry *domain.ConversationLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockRenderer mocks the Renderer interface
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, history []domain.Turn, line string) (string, error) {
	args := m.Called(ctx, history, line)
	return args.String(0), args.Error(1)
}
