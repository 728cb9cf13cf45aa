package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Rrens/reservasi-bot/internal/api/response"
	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ReservationManager reads and cancels stored reservations
type ReservationManager interface {
	List(ctx context.Context) ([]domain.Reservation, error)
	Get(ctx context.Context, code string) (*domain.Reservation, error)
	Cancel(ctx context.Context, code string) error
}

type ReservationHandler struct {
	reservations ReservationManager
}

func NewReservationHandler(reservations ReservationManager) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// List returns the most recent reservations
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservations.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list reservations")
		response.InternalError(w, msgGenericFailure)
		return
	}

	response.List(w, reservations)
}

// Get returns a reservation by code
func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	reservation, err := h.reservations.Get(r.Context(), code)
	if errors.Is(err, domain.ErrReservationNotFound) {
		response.NotFound(w, msgReservationNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("reservation_code", code).Msg("Failed to get reservation")
		response.InternalError(w, msgGenericFailure)
		return
	}

	response.OK(w, reservation)
}

// Cancel marks a reservation as cancelled
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	err := h.reservations.Cancel(r.Context(), code)
	if errors.Is(err, domain.ErrReservationNotFound) {
		response.NotFound(w, msgReservationNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("reservation_code", code).Msg("Failed to cancel reservation")
		response.InternalError(w, msgGenericFailure)
		return
	}

	response.Message(w, msgReservationCancelled)
}
