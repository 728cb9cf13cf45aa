package service

import (
	"context"
	"fmt"

	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/rs/zerolog/log"
)

// ListLimit caps the reservation listing
const ListLimit = 50

// ReservationService handles reservation lookups and cancellation
type ReservationService struct {
	repo  domain.ReservationRepository
	cache domain.ReservationCache
}

// NewReservationService creates a new reservation service. cache may be nil.
func NewReservationService(repo domain.ReservationRepository, cache domain.ReservationCache) *ReservationService {
	return &ReservationService{repo: repo, cache: cache}
}

// List returns the most recent reservations, newest first
func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	reservations, err := s.repo.ListRecent(ctx, ListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

// Get returns the reservation with code, or domain.ErrReservationNotFound
func (s *ReservationService) Get(ctx context.Context, code string) (*domain.Reservation, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, code)
		if err != nil {
			log.Warn().Err(err).Str("reservation_code", code).Msg("Reservation cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	reservation, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, reservation); err != nil {
			log.Warn().Err(err).Str("reservation_code", code).Msg("Reservation cache write failed")
		}
	}

	return reservation, nil
}

// Cancel marks the reservation cancelled. Cancelling twice succeeds.
func (s *ReservationService) Cancel(ctx context.Context, code string) error {
	if err := s.repo.UpdateStatus(ctx, code, domain.StatusCancelled); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, code); err != nil {
			log.Warn().Err(err).Str("reservation_code", code).Msg("Reservation cache invalidation failed")
		}
	}

	log.Info().Str("reservation_code", code).Msg("Reservation cancelled")
	return nil
}

// Ping verifies the reservation store is reachable
func (s *ReservationService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
