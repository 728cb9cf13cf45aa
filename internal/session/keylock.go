package session

import (
	"context"
	"sync"
)

type keyLock struct {
	ch   chan struct{}
	refs int
}

// KeyedMutex is a set of mutexes addressed by string key. Entries exist only
// while someone holds or waits for them.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

// NewKeyedMutex creates an empty keyed mutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyLock)}
}

// Lock blocks until key is free or ctx is done
func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(key, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.ch
			k.release(key, l)
		})
	}, nil
}

func (k *KeyedMutex) release(key string, l *keyLock) {
	k.mu.Lock()
	defer k.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}

// Len returns the number of keys currently held or waited on
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
