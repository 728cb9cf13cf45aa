package session

import (
	"context"
	"sync"
	"time"

	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// MemoryStore is a process-local Store. Expiry is evaluated on every access
// and by Run's periodic sweep.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	locks    *KeyedMutex
	clock    clockwork.Clock
	idleTTL  time.Duration
}

// Option configures a MemoryStore
type Option func(*MemoryStore)

// WithIdleTTL removes sessions that have not been saved for ttl.
// Zero disables idle expiry.
func WithIdleTTL(ttl time.Duration) Option {
	return func(s *MemoryStore) {
		s.idleTTL = ttl
	}
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore(clock clockwork.Clock, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*domain.Session),
		locks:    NewKeyedMutex(),
		clock:    clock,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(id, s.clock.Now())
	if !ok {
		return nil, ErrNotFound
	}
	return sess.Clone(), nil
}

func (s *MemoryStore) GetOrCreate(ctx context.Context, id string) (*domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if sess, ok := s.live(id, now); ok {
		return sess.Clone(), false, nil
	}

	sess := domain.NewSession(id, now)
	s.sessions[id] = sess
	return sess.Clone(), true, nil
}

func (s *MemoryStore) Save(ctx context.Context, sess *domain.Session) error {
	stored := sess.Clone()
	stored.UpdatedAt = s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Lock(ctx context.Context, id string) (func(), error) {
	return s.locks.Lock(ctx, id)
}

// Len returns the number of stored sessions, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Run sweeps expired sessions every interval until ctx is done
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			removed, _ := s.Sweep(ctx)
			if removed > 0 {
				log.Debug().Int("removed", removed).Msg("expired sessions swept")
			}
		}
	}
}

// live must be called with mu held
func (s *MemoryStore) live(id string, now time.Time) (*domain.Session, bool) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return nil, false
	}
	return sess, true
}

func (s *MemoryStore) expired(sess *domain.Session, now time.Time) bool {
	if !sess.ExpiresAt.IsZero() && !now.Before(sess.ExpiresAt) {
		return true
	}
	return s.idleTTL > 0 && now.Sub(sess.UpdatedAt) >= s.idleTTL
}
