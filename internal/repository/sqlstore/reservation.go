package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/jonboulle/clockwork"
)

const reservationColumns = `id, reservation_code, customer_name, phone, reservation_date,
	reservation_time, guest_count, status, created_at, updated_at`

// ReservationRepository implements domain.ReservationRepository
type ReservationRepository struct {
	db    *sql.DB
	clock clockwork.Clock
}

// Create inserts a new reservation
func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	query := `INSERT INTO reservations (` + reservationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		reservation.ID.String(),
		reservation.ReservationCode,
		reservation.CustomerName,
		reservation.Phone,
		reservation.ReservationDate,
		reservation.ReservationTime,
		reservation.GuestCount,
		string(reservation.Status),
		formatTime(reservation.CreatedAt),
		formatTime(reservation.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateCode, reservation.ReservationCode)
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	return nil
}

// ListRecent returns the newest reservations first
func (r *ReservationRepository) ListRecent(ctx context.Context, limit int) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	reservations := []domain.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reservations: %w", err)
	}

	return reservations, nil
}

// GetByCode retrieves a reservation by its code
func (r *ReservationRepository) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_code = ?`

	res, err := scanReservation(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}

	return res, nil
}

// UpdateStatus sets the status of a reservation
func (r *ReservationRepository) UpdateStatus(ctx context.Context, code string, status domain.ReservationStatus) error {
	query := `UPDATE reservations SET status = ?, updated_at = ? WHERE reservation_code = ?`

	result, err := r.db.ExecContext(ctx, query, string(status), formatTime(r.clock.Now()), code)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// MySQL reports zero affected rows when the values did not change
	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM reservations WHERE reservation_code = ?`, code).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrReservationNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check reservation: %w", err)
	}

	return nil
}

// Ping verifies database connectivity
func (r *ReservationRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var status, createdAt, updatedAt string

	if err := row.Scan(
		&res.ID,
		&res.ReservationCode,
		&res.CustomerName,
		&res.Phone,
		&res.ReservationDate,
		&res.ReservationTime,
		&res.GuestCount,
		&status,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan reservation: %w", err)
	}
	res.Status = domain.ReservationStatus(status)

	var err error
	if res.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if res.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &res, nil
}
