package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	reservationCachePrefix = "reservation:"
	defaultReservationTTL  = 10 * time.Minute
)

// ReservationCache handles reservation lookups in Redis
type ReservationCache struct {
	client *Client
	ttl    time.Duration
}

// NewReservationCache creates a new reservation cache
func NewReservationCache(client *Client, ttl time.Duration) *ReservationCache {
	if ttl <= 0 {
		ttl = defaultReservationTTL
	}
	return &ReservationCache{client: client, ttl: ttl}
}

// Get returns the cached reservation, or nil on a cache miss
func (c *ReservationCache) Get(ctx context.Context, code string) (*domain.Reservation, error) {
	data, err := c.client.rdb.Get(ctx, reservationKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached reservation: %w", err)
	}
	return decodeReservation(data)
}

// Set caches a reservation under its code
func (c *ReservationCache) Set(ctx context.Context, reservation *domain.Reservation) error {
	data, err := json.Marshal(reservation)
	if err != nil {
		return fmt.Errorf("failed to marshal reservation: %w", err)
	}

	return c.client.rdb.Set(ctx, reservationKey(reservation.ReservationCode), data, c.ttl).Err()
}

// Invalidate removes a cached reservation
func (c *ReservationCache) Invalidate(ctx context.Context, code string) error {
	return c.client.rdb.Del(ctx, reservationKey(code)).Err()
}

func reservationKey(code string) string {
	return reservationCachePrefix + code
}

func decodeReservation(data []byte) (*domain.Reservation, error) {
	var reservation domain.Reservation
	if err := json.Unmarshal(data, &reservation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reservation: %w", err)
	}
	return &reservation, nil
}
