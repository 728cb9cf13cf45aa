package dialogue

import (
	"context"
	"fmt"
	"time"

	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/google/uuid"
)

// DefaultCompletionGrace is how long a completed session stays addressable
const DefaultCompletionGrace = 5 * time.Minute

// Committer turns collected fields into exactly one reservation write
type Committer struct {
	reservations domain.ReservationRepository
	codes        *CodeGenerator
	grace        time.Duration
}

// NewCommitter creates a committer writing to reservations
func NewCommitter(reservations domain.ReservationRepository, codes *CodeGenerator, grace time.Duration) *Committer {
	if grace <= 0 {
		grace = DefaultCompletionGrace
	}
	return &Committer{
		reservations: reservations,
		codes:        codes,
		grace:        grace,
	}
}

// Commit writes the reservation and, only when the write succeeds, marks
// sess complete and schedules its expiry. On failure sess is not modified
// and the error wraps domain.ErrReservationNotSaved.
func (c *Committer) Commit(ctx context.Context, sess *domain.Session, fields domain.Collected, now time.Time) (*domain.Reservation, error) {
	if sess.IsComplete {
		return nil, fmt.Errorf("session %s already has reservation %s", sess.ID, sess.ReservationCode)
	}

	reservation := &domain.Reservation{
		ID:              uuid.New(),
		ReservationCode: c.codes.Next(),
		CustomerName:    fields.CustomerName,
		Phone:           fields.Phone,
		ReservationDate: fields.Date,
		ReservationTime: fields.Time,
		GuestCount:      fields.GuestCount,
		Status:          domain.StatusConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := c.reservations.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrReservationNotSaved, err)
	}

	sess.Collected = fields
	sess.IsComplete = true
	sess.ReservationCode = reservation.ReservationCode
	sess.CompletedAt = now
	sess.ExpiresAt = now.Add(c.grace)

	return reservation, nil
}
