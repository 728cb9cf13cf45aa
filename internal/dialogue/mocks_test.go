package dialogue

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

// MockGenerator mocks the Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, system string, history []domain.Turn) (string, error) {
	args := m.Called(ctx, system, history)
	return args.String(0), args.Error(1)
}
