// Package session keeps the dialogue state of live conversations.
package session

import (
	"context"
	"errors"

	"github.com/Rrens/reservasi-bot/internal/domain"
)

// ErrNotFound is returned when a session does not exist or has expired
var ErrNotFound = errors.New("session not found")

// Store owns the lifetime of sessions: creation on first contact and removal
// once they expire. Callers receive copies; changes only land through Save.
type Store interface {
	// Get returns ErrNotFound for unknown or expired sessions
	Get(ctx context.Context, id string) (*domain.Session, error)

	// GetOrCreate returns the live session for id, creating a fresh one at the
	// first step when none exists. created reports which happened.
	GetOrCreate(ctx context.Context, id string) (sess *domain.Session, created bool, err error)

	Save(ctx context.Context, sess *domain.Session) error
	Delete(ctx context.Context, id string) error

	// Sweep removes expired sessions and returns how many were removed
	Sweep(ctx context.Context) (int, error)

	// Lock serialises turns for one session id. The returned func releases it.
	Lock(ctx context.Context, id string) (unlock func(), err error)
}
