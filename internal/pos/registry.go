package pos

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry holds the open register sessions. Sessions live in memory only:
// an abandoned cart expires after its TTL and a restart drops all of them.
// A cart is pure working state; nothing is owed to one that never checked out.
type Registry struct {
	mu          sync.RWMutex
	carts       map[uuid.UUID]*Cart
	ttl         time.Duration
	cleanupTick time.Duration
}

// NewRegistry creates a session registry. Sessions untouched for ttl are
// swept by a background goroutine.
func NewRegistry(ttl, cleanupTick time.Duration) *Registry {
	r := &Registry{
		carts:       make(map[uuid.UUID]*Cart),
		ttl:         ttl,
		cleanupTick: cleanupTick,
	}
	go r.cleanupLoop()
	return r
}

// Open creates a new register session with the given default tax rate.
func (r *Registry) Open(taxRate float64) *Cart {
	cart := NewCart(taxRate)
	r.mu.Lock()
	r.carts[cart.ID()] = cart
	r.mu.Unlock()
	return cart
}

// Get returns the session with the given ID.
func (r *Registry) Get(id uuid.UUID) (*Cart, error) {
	r.mu.RLock()
	cart, ok := r.carts[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cart, nil
}

// Close discards a session.
func (r *Registry) Close(id uuid.UUID) {
	r.mu.Lock()
	delete(r.carts, id)
	r.mu.Unlock()
}

// Count returns the number of open sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}

// cleanupLoop periodically removes expired sessions
func (r *Registry) cleanupLoop() {
	ticker := time.NewTicker(r.cleanupTick)
	defer ticker.Stop()

	for range ticker.C {
		r.sweep(time.Now())
	}
}

func (r *Registry) sweep(now time.Time) {
	cutoff := now.Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, cart := range r.carts {
		if cart.TouchedAt().Before(cutoff) {
			delete(r.carts, id)
		}
	}
}
