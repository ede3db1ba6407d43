package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/localstore"

	"github.com/shopspring/decimal"
)

func TestOpenRejectsMalformedID(t *testing.T) {
	r := NewRegistry(localstore.NewMemory(), 0, nil)
	if _, err := r.Open(context.Background(), "not-a-uuid"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestOpenReturnsSameSession(t *testing.T) {
	r := NewRegistry(localstore.NewMemory(), 0, nil)
	id := NewID()
	first, err := r.Open(context.Background(), id)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	second, err := r.Open(context.Background(), id)
	if err != nil {
		t.Fatalf("open again: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same session instance")
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", r.Len())
	}
}

func TestSessionsRehydrateAcrossRegistries(t *testing.T) {
	ctx := context.Background()
	mem := localstore.NewMemory()
	id := NewID()

	s, err := NewRegistry(mem, 0, nil).Open(ctx, id)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	p := domain.Product{ID: "1", Name: "Tee", Price: decimal.NewFromInt(8500)}
	if err := s.Cart.AddItem(ctx, p, 2, "M", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Wishlist.AddItem(ctx, p); err != nil {
		t.Fatalf("wish: %v", err)
	}

	restarted, err := NewRegistry(mem, 0, nil).Open(ctx, id)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if restarted.Cart.TotalItems() != 2 || !restarted.Wishlist.IsInWishlist("1") {
		t.Fatalf("expected state to survive restart")
	}
}

func TestCloseResetsState(t *testing.T) {
	ctx := context.Background()
	mem := localstore.NewMemory()
	r := NewRegistry(mem, 0, nil)
	id := NewID()
	s, _ := r.Open(ctx, id)
	_ = s.Cart.AddItem(ctx, domain.Product{ID: "1", Price: decimal.NewFromInt(1)}, 1, "", "")

	if err := r.Close(ctx, id); err != nil {
		t.Fatalf("close: %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("expected session dropped")
	}
	if len(mem.Keys()) != 0 {
		t.Fatalf("expected storage cleared, got %v", mem.Keys())
	}
	again, _ := r.Open(ctx, id)
	if again.Cart.TotalItems() != 0 {
		t.Fatalf("expected empty cart after close")
	}
}

func TestIdleSessionsAreEvictedAndRehydrated(t *testing.T) {
	ctx := context.Background()
	mem := localstore.NewMemory()
	r := NewRegistry(mem, time.Minute, nil)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }
	r.lastSweep = clock

	kept := NewID()
	s, err := r.Open(ctx, kept)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Cart.AddItem(ctx, domain.Product{ID: "1", Price: decimal.NewFromInt(8500)}, 3, "", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	for i := 0; i < 50; i++ {
		if _, err := r.Open(ctx, NewID()); err != nil {
			t.Fatalf("open anonymous: %v", err)
		}
	}
	if r.Len() != 51 {
		t.Fatalf("expected 51 live sessions, got %d", r.Len())
	}

	clock = clock.Add(2 * time.Minute)
	fresh := NewID()
	if _, err := r.Open(ctx, fresh); err != nil {
		t.Fatalf("open after idle: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("expected idle sessions evicted, got %d live", r.Len())
	}

	again, err := r.Open(ctx, kept)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if again == s {
		t.Fatalf("expected a freshly hydrated session after eviction")
	}
	if again.Cart.TotalItems() != 3 {
		t.Fatalf("expected persisted cart to survive eviction, got %d items", again.Cart.TotalItems())
	}
}

func TestActiveSessionIsNotEvicted(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(localstore.NewMemory(), time.Minute, nil)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	id := NewID()
	first, _ := r.Open(ctx, id)
	for i := 0; i < 5; i++ {
		clock = clock.Add(40 * time.Second)
		s, err := r.Open(ctx, id)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		if s != first {
			t.Fatalf("expected session kept alive by use at step %d", i)
		}
	}
}

// resetRacer opens the session from another goroutine while the cart key is
// being deleted.
type resetRacer struct {
	*localstore.Memory
	registry *Registry
	id       string
	reopened chan *Session
	once     bool
}

func (s *resetRacer) Delete(ctx context.Context, key string) error {
	if !s.once && strings.HasPrefix(key, "cart-store:") {
		s.once = true
		go func() {
			sess, err := s.registry.Open(ctx, s.id)
			if err != nil {
				close(s.reopened)
				return
			}
			s.reopened <- sess
		}()
	}
	return s.Memory.Delete(ctx, key)
}

func TestCloseIsNotUndoneByConcurrentOpen(t *testing.T) {
	ctx := context.Background()
	id := NewID()
	storage := &resetRacer{Memory: localstore.NewMemory(), id: id, reopened: make(chan *Session, 1)}
	r := NewRegistry(storage, 0, nil)
	storage.registry = r

	s, err := r.Open(ctx, id)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = s.Cart.AddItem(ctx, domain.Product{ID: "1", Price: decimal.NewFromInt(1)}, 2, "", "")
	_ = s.Wishlist.AddItem(ctx, domain.Product{ID: "1"})

	if err := r.Close(ctx, id); err != nil {
		t.Fatalf("close: %v", err)
	}
	select {
	case reopened, ok := <-storage.reopened:
		if !ok {
			t.Fatalf("concurrent open failed")
		}
		if reopened.Cart.TotalItems() != 0 || reopened.Wishlist.IsInWishlist("1") {
			t.Fatalf("expected concurrent open to see the reset state")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("concurrent open never completed")
	}
}

func TestCloseClearsEvictedSession(t *testing.T) {
	ctx := context.Background()
	mem := localstore.NewMemory()
	id := NewID()
	s, _ := NewRegistry(mem, 0, nil).Open(ctx, id)
	_ = s.Cart.AddItem(ctx, domain.Product{ID: "1", Price: decimal.NewFromInt(1)}, 1, "", "")

	if err := NewRegistry(mem, 0, nil).Close(ctx, id); err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(mem.Keys()) != 0 {
		t.Fatalf("expected storage cleared, got %v", mem.Keys())
	}
}
