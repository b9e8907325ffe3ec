package lock

import (
	"context"
	"fmt"
	"sync"

	"github.com/astrobsm/ivanstamas-api/internal/application/attendance"
	"github.com/astrobsm/ivanstamas-api/internal/domain"
)

var _ attendance.StaffLocker = (*KeyedMutex)(nil)

// KeyedMutex un mutex por clave dentro del proceso. Las entradas se liberan al quedar sin uso.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

// NewKeyedMutex construye el locker en proceso.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*keyedEntry)}
}

// Lock espera el turno del staff o hasta que ctx termine (domain.ErrBusy).
func (k *KeyedMutex) Lock(ctx context.Context, staffID string) (func(), error) {
	k.mu.Lock()
	e, ok := k.entries[staffID]
	if !ok {
		e = &keyedEntry{sem: make(chan struct{}, 1)}
		k.entries[staffID] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.sem
				k.release(staffID, e)
			})
		}, nil
	case <-ctx.Done():
		k.release(staffID, e)
		return nil, fmt.Errorf("%w: %v", domain.ErrBusy, ctx.Err())
	}
}

func (k *KeyedMutex) release(key string, e *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
}

// size entradas activas (tests).
func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
