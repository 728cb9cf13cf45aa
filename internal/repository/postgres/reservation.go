package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
)

const uniqueViolation = "23505"

const reservationColumns = `id, reservation_code, customer_name, phone,
	TO_CHAR(reservation_date, 'YYYY-MM-DD'), TO_CHAR(reservation_time, 'HH24:MI'),
	guest_count, status, created_at, updated_at`

// ReservationRepository implements domain.ReservationRepository
type ReservationRepository struct {
	pool  *pgxpool.Pool
	clock clockwork.Clock
}

// NewReservationRepository creates a new reservation repository; clock
// stamps updated_at
func NewReservationRepository(pool *pgxpool.Pool, clock clockwork.Clock) *ReservationRepository {
	return &ReservationRepository{pool: pool, clock: clock}
}

// Create inserts a new reservation
func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	query := `
		INSERT INTO reservations (id, reservation_code, customer_name, phone, reservation_date,
			reservation_time, guest_count, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::text::date, $6::text::time, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		reservation.ID,
		reservation.ReservationCode,
		reservation.CustomerName,
		reservation.Phone,
		reservation.ReservationDate,
		reservation.ReservationTime,
		reservation.GuestCount,
		string(reservation.Status),
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateCode, reservation.ReservationCode)
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	return nil
}

// ListRecent returns the newest reservations first
func (r *ReservationRepository) ListRecent(ctx context.Context, limit int) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
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
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_code = $1`

	res, err := scanReservation(r.pool.QueryRow(ctx, query, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}

	return res, nil
}

// UpdateStatus sets the status of a reservation
func (r *ReservationRepository) UpdateStatus(ctx context.Context, code string, status domain.ReservationStatus) error {
	query := `UPDATE reservations SET status = $2, updated_at = $3 WHERE reservation_code = $1`

	tag, err := r.pool.Exec(ctx, query, code, string(status), r.clock.Now())
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}

	return nil
}

// Ping verifies database connectivity
func (r *ReservationRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	var status string

	if err := row.Scan(
		&res.ID,
		&res.ReservationCode,
		&res.CustomerName,
		&res.Phone,
		&res.ReservationDate,
		&res.ReservationTime,
		&res.GuestCount,
		&status,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan reservation: %w", err)
	}
	res.Status = domain.ReservationStatus(status)

	return &res, nil
}
