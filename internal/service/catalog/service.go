// Package catalog is the storefront's catalog data access. It fronts the
// product and order repositories with a time-boxed product cache and turns
// repository panics into errors.
package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"storefront/internal/cache"
	"storefront/internal/domain"
)

const productsKey = "products"

// DefaultTTL is how long a product listing stays cached.
const DefaultTTL = 5 * time.Minute

type ProductRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, f domain.ProductFields) (*domain.Product, error)
	Update(ctx context.Context, id string, f domain.ProductFields) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	HasStock(ctx context.Context, id string, quantity int) (bool, error)
}

type OrderRepo interface {
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

type Options struct {
	// Remote marks the repositories as backed by the remote store. When
	// false listings bypass the cache.
	Remote bool
	TTL    time.Duration
	// FallbackOrders is served when the remote order listing fails.
	FallbackOrders func() []domain.Order
	Cache          *cache.Cache[[]domain.Product]
}

type Service struct {
	products       ProductRepo
	orders         OrderRepo
	remote         bool
	ttl            time.Duration
	cache          *cache.Cache[[]domain.Product]
	fallbackOrders func() []domain.Order
	logger         *log.Logger
}

func New(products ProductRepo, orders OrderRepo, opts Options, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Cache == nil {
		opts.Cache = cache.New[[]domain.Product]()
	}
	return &Service{
		products:       products,
		orders:         orders,
		remote:         opts.Remote,
		ttl:            opts.TTL,
		cache:          opts.Cache,
		fallbackOrders: opts.FallbackOrders,
		logger:         logger,
	}
}

// Remote reports whether the service talks to the remote store.
func (s *Service) Remote() bool {
	return s.remote
}

// guard runs fn and converts a panic into an error.
func guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("catalog: %s: %w: panic: %v", op, domain.ErrRemoteUnavailable, r)
		}
	}()
	return fn()
}

// GetProducts returns the listing, newest first. Callers get their own copy.
func (s *Service) GetProducts(ctx context.Context) ([]domain.Product, error) {
	if !s.remote {
		var list []domain.Product
		err := guard("list products", func() (err error) {
			list, err = s.products.List(ctx)
			return err
		})
		return list, err
	}

	list, hit, err := s.cache.GetOrFetch(ctx, productsKey, s.ttl, func(ctx context.Context) ([]domain.Product, error) {
		var fetched []domain.Product
		err := guard("list products", func() (err error) {
			fetched, err = s.products.List(ctx)
			return err
		})
		return fetched, err
	})
	if err != nil {
		s.logger.Printf("catalog: list products error=%v", err)
		return nil, err
	}
	s.logger.Printf("catalog: list products count=%d cached=%t", len(list), hit)
	return domain.CloneProducts(list), nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p *domain.Product
	err := guard("get product", func() (err error) {
		p, err = s.products.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProduct writes through to the repository. It does not touch the
// listing cache; callers invalidate with ClearProductCache.
func (s *Service) CreateProduct(ctx context.Context, f domain.ProductFields) (*domain.Product, error) {
	var p *domain.Product
	err := guard("create product", func() (err error) {
		p, err = s.products.Create(ctx, f)
		return err
	})
	if err != nil {
		s.logger.Printf("catalog: create product error=%v", err)
		return nil, err
	}
	s.logger.Printf("catalog: created product id=%s", p.ID)
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, f domain.ProductFields) (*domain.Product, error) {
	var p *domain.Product
	err := guard("update product", func() (err error) {
		p, err = s.products.Update(ctx, id, f)
		return err
	})
	if err != nil {
		s.logger.Printf("catalog: update product id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	err := guard("delete product", func() error {
		return s.products.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Printf("catalog: delete product id=%s error=%v", id, err)
	}
	return err
}

func (s *Service) ClearProductCache() {
	s.cache.Invalidate(productsKey)
}

// GetOrders returns orders newest first. When the remote listing fails the
// fallback orders are returned together with the error.
func (s *Service) GetOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := guard("list orders", func() (err error) {
		orders, err = s.orders.List(ctx)
		return err
	})
	if err != nil {
		s.logger.Printf("catalog: list orders error=%v", err)
		if s.fallbackOrders != nil {
			return s.fallbackOrders(), err
		}
		return nil, err
	}
	return orders, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidInput, status)
	}
	var o *domain.Order
	err := guard("update order status", func() (err error) {
		o, err = s.orders.UpdateStatus(ctx, id, status)
		return err
	})
	if err != nil {
		s.logger.Printf("catalog: update order id=%s error=%v", id, err)
		return nil, err
	}
	s.logger.Printf("catalog: order id=%s status=%s", id, status)
	return o, nil
}

// CheckStock reports whether quantity units of the product are available.
func (s *Service) CheckStock(ctx context.Context, id string, quantity int) (bool, error) {
	var ok bool
	err := guard("check stock", func() (err error) {
		ok, err = s.products.HasStock(ctx, id, quantity)
		return err
	})
	return ok, err
}
