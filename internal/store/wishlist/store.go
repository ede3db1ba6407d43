package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/localstore"
)

const DefaultKey = "wishlist-store"

// Store is a set of wished-for products keyed by product id, persisted on
// every mutation.
type Store struct {
	mu      sync.Mutex
	storage localstore.Storage
	key     string
	items   []domain.WishlistEntry
}

type persisted struct {
	State struct {
		Items []domain.WishlistEntry `json:"items"`
	} `json:"state"`
	Version int `json:"version"`
}

func New(storage localstore.Storage, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{storage: storage, key: key}
}

func (s *Store) Hydrate(ctx context.Context) error {
	raw, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, localstore.ErrNotFound) {
		s.mu.Lock()
		s.items = nil
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("wishlist: load %s: %w", s.key, err)
	}
	var doc persisted
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("wishlist: decode %s: %w", s.key, err)
	}
	s.mu.Lock()
	s.items = doc.State.Items
	s.mu.Unlock()
	return nil
}

func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	return s.storage.Delete(ctx, s.key)
}

// AddItem is idempotent: a product already present is left as it is.
func (s *Store) AddItem(ctx context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(product.ID) >= 0 {
		return s.persistLocked(ctx)
	}
	s.items = append(s.items, domain.WishlistEntry{Product: product.Clone()})
	return s.persistLocked(ctx)
}

func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(productID); i >= 0 {
		s.items = append(s.items[:i:i], s.items[i+1:]...)
	}
	return s.persistLocked(ctx)
}

func (s *Store) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(productID) >= 0
}

func (s *Store) Items() []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.WishlistEntry, len(s.items))
	for i, e := range s.items {
		out[i] = domain.WishlistEntry{Product: e.Product.Clone()}
	}
	return out
}

func (s *Store) indexLocked(productID string) int {
	for i, e := range s.items {
		if e.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked(ctx context.Context) error {
	var doc persisted
	doc.State.Items = s.items
	if doc.State.Items == nil {
		doc.State.Items = []domain.WishlistEntry{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("wishlist: encode: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("wishlist: persist %s: %w", s.key, err)
	}
	return nil
}
