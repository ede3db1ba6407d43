package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/localstore"

	"github.com/shopspring/decimal"
)

// DefaultKey is the storage key used when a store is not namespaced.
const DefaultKey = "cart-store"

// Store holds one shopper's cart and writes it through to local storage on
// every mutation. Lines are keyed by product id only.
type Store struct {
	mu      sync.Mutex
	storage localstore.Storage
	key     string
	items   []domain.CartLine
}

type persisted struct {
	State struct {
		Items []domain.CartLine `json:"items"`
	} `json:"state"`
	Version int `json:"version"`
}

func New(storage localstore.Storage, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{storage: storage, key: key}
}

// Hydrate replaces in-memory state with what was last persisted. A missing
// key leaves the cart empty.
func (s *Store) Hydrate(ctx context.Context) error {
	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, localstore.ErrNotFound) {
			s.mu.Lock()
			s.items = nil
			s.mu.Unlock()
			return nil
		}
		return fmt.Errorf("cart: load %s: %w", s.key, err)
	}
	var doc persisted
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("cart: decode %s: %w", s.key, err)
	}
	s.mu.Lock()
	s.items = doc.State.Items
	s.mu.Unlock()
	return nil
}

// Reset empties the cart and removes its persisted entry.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	return s.storage.Delete(ctx, s.key)
}

// AddItem merges into the existing line for product.ID, or appends a new
// one. On merge only the quantity changes; the first variant is kept.
// Neither quantity nor stock is validated here.
func (s *Store) AddItem(ctx context.Context, product domain.Product, quantity int, size, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += quantity
			return s.persistLocked(ctx)
		}
	}
	s.items = append(s.items, domain.CartLine{
		Product:       product.Clone(),
		Quantity:      quantity,
		SelectedSize:  size,
		SelectedColor: color,
	})
	return s.persistLocked(ctx)
}

// RemoveItem drops the line for productID. Absent ids are a no-op, but the
// unchanged state is still written through.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0:0]
	for _, line := range s.items {
		if line.ID != productID {
			kept = append(kept, line)
		}
	}
	s.items = kept
	return s.persistLocked(ctx)
}

// UpdateQuantity stores quantity verbatim, including zero or negative
// values. Callers clamp.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
		}
	}
	return s.persistLocked(ctx)
}

func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.persistLocked(ctx)
}

// TotalPrice sums each line's snapshot price times its quantity.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, line := range s.items {
		total = total.Add(line.LineTotal())
	}
	return total
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, line := range s.items {
		n += line.Quantity
	}
	return n
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.items))
	for i, line := range s.items {
		line.Product = line.Product.Clone()
		out[i] = line
	}
	return out
}

// Line returns the line for productID, if any.
func (s *Store) Line(productID string) (domain.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range s.items {
		if line.ID == productID {
			line.Product = line.Product.Clone()
			return line, true
		}
	}
	return domain.CartLine{}, false
}

func (s *Store) persistLocked(ctx context.Context) error {
	var doc persisted
	doc.State.Items = s.items
	if doc.State.Items == nil {
		doc.State.Items = []domain.CartLine{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("cart: persist %s: %w", s.key, err)
	}
	return nil
}
