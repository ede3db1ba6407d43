// Package session owns the lifecycle of per-shopper cart and wishlist
// stores: created and hydrated on first use, reset on logout, evicted from
// memory after a period of inactivity.
package session

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"storefront/internal/localstore"
	"storefront/internal/store/cart"
	"storefront/internal/store/wishlist"

	"github.com/google/uuid"
)

// DefaultIdleTTL is how long an untouched session stays in memory.
const DefaultIdleTTL = 30 * time.Minute

var ErrInvalidID = errors.New("invalid session id")

// Session bundles the stores of one shopper.
type Session struct {
	ID       string
	Cart     *cart.Store
	Wishlist *wishlist.Store
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

type Registry struct {
	mu        sync.Mutex
	storage   localstore.Storage
	logger    *log.Logger
	idleTTL   time.Duration
	now       func() time.Time
	lastSweep time.Time
	sessions  map[string]*entry
}

// NewRegistry builds a registry that evicts sessions idle for longer than
// idleTTL. A non-positive idleTTL uses DefaultIdleTTL.
func NewRegistry(storage localstore.Storage, idleTTL time.Duration, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Registry{
		storage:   storage,
		logger:    logger,
		idleTTL:   idleTTL,
		now:       time.Now,
		lastSweep: time.Now(),
		sessions:  make(map[string]*entry),
	}
}

// NewID issues a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// Open returns the live session for id, hydrating it from storage when this
// process has not seen it yet or has evicted it. Persisted state survives
// eviction.
func (r *Registry) Open(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.evictIdleLocked(now)

	if e, ok := r.sessions[id]; ok && !r.idle(e, now) {
		e.lastSeen = now
		return e.session, nil
	}
	s := r.newSession(id)
	if err := s.Cart.Hydrate(ctx); err != nil {
		return nil, err
	}
	if err := s.Wishlist.Hydrate(ctx); err != nil {
		return nil, err
	}
	r.sessions[id] = &entry{session: s, lastSeen: now}
	r.logger.Printf("session: opened id=%s cart_items=%d wishlist_items=%d", id, s.Cart.TotalItems(), len(s.Wishlist.Items()))
	return s, nil
}

// Close resets both stores and forgets the session. The reset happens under
// the registry lock so a concurrent Open cannot hydrate the old state.
func (r *Registry) Close(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.newSession(id)
	if e, ok := r.sessions[id]; ok {
		s = e.session
	}
	if err := s.Cart.Reset(ctx); err != nil {
		return err
	}
	if err := s.Wishlist.Reset(ctx); err != nil {
		return err
	}
	delete(r.sessions, id)
	r.logger.Printf("session: closed id=%s", id)
	return nil
}

// Len reports how many sessions are live in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) newSession(id string) *Session {
	return &Session{
		ID:       id,
		Cart:     cart.New(r.storage, cart.DefaultKey+":"+id),
		Wishlist: wishlist.New(r.storage, wishlist.DefaultKey+":"+id),
	}
}

func (r *Registry) idle(e *entry, now time.Time) bool {
	return now.Sub(e.lastSeen) > r.idleTTL
}

// evictIdleLocked drops idle sessions, scanning at most once per half TTL.
func (r *Registry) evictIdleLocked(now time.Time) {
	if now.Sub(r.lastSweep) < r.idleTTL/2 {
		return
	}
	r.lastSweep = now
	evicted := 0
	for id, e := range r.sessions {
		if r.idle(e, now) {
			delete(r.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Printf("session: evicted idle=%d live=%d", evicted, len(r.sessions))
	}
}
