package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

// Registry owns per-instance session state keyed by generated ids, so two
// open modals never share a sheet or a scan set.
type Registry[T any] struct {
	mu      sync.RWMutex
	items   map[string]*entry[T]
	idleTTL time.Duration
	now     func() time.Time
}

func NewRegistry[T any](idleTTL time.Duration) *Registry[T] {
	return &Registry[T]{
		items:   make(map[string]*entry[T]),
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// WithClock swaps the clock used for idle tracking.
func (r *Registry[T]) WithClock(now func() time.Time) *Registry[T] {
	r.now = now
	return r
}

func (r *Registry[T]) Add(value T) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id] = &entry[T]{value: value, lastSeen: r.now()}
	return id
}

// Get returns the session and marks it as used.
func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	e.lastSeen = r.now()
	return e.value, true
}

func (r *Registry[T]) Remove(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	delete(r.items, id)
	return e.value, true
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed. A non-positive TTL disables sweeping.
func (r *Registry[T]) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	removed := 0
	for id, e := range r.items {
		if e.lastSeen.Before(cutoff) {
			delete(r.items, id)
			removed++
		}
	}
	return removed
}
