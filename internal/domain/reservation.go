package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// CustomerNameMaxLength is the width of the customer_name column, in characters
const CustomerNameMaxLength = 100

// Reservation is a confirmed table booking
type Reservation struct {
	ID              uuid.UUID         `json:"id"`
	ReservationCode string            `json:"reservation_code"`
	CustomerName    string            `json:"customer_name"`
	Phone           string            `json:"phone"`
	ReservationDate string            `json:"reservation_date"` // YYYY-MM-DD
	ReservationTime string            `json:"reservation_time"` // HH:MM
	GuestCount      int               `json:"guest_count"`
	Status          ReservationStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ReservationRepository defines the interface for reservation storage
type ReservationRepository interface {
	Create(ctx context.Context, reservation *Reservation) error
	ListRecent(ctx context.Context, limit int) ([]Reservation, error)
	// GetByCode returns ErrReservationNotFound when no reservation has the code
	GetByCode(ctx context.Context, code string) (*Reservation, error)
	// UpdateStatus returns ErrReservationNotFound when no reservation has the code
	UpdateStatus(ctx context.Context, code string, status ReservationStatus) error
	Ping(ctx context.Context) error
}

// ReservationCache caches reservations by code
type ReservationCache interface {
	Get(ctx context.Context, code string) (*Reservation, error)
	Set(ctx context.Context, reservation *Reservation) error
	Invalidate(ctx context.Context, code string) error
}
