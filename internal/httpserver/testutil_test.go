package httpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/brand"
	"storefront/internal/domain"
	"storefront/internal/localstore"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	"storefront/internal/service/catalog"
	"storefront/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
)

var testHashKey = []byte("0123456789abcdef0123456789abcdef")

type testEnv struct {
	router  *gin.Engine
	storage *localstore.Memory
}

func newTestEnv(t *testing.T, cat Catalog) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if cat == nil {
		cat = catalog.New(productrepo.NewFallback(), orderrepo.NewFallback(), catalog.Options{}, nil)
	}
	storage := localstore.NewMemory()
	router, err := buildRouter(nil, nil, Deps{
		Catalog:  cat,
		Sessions: session.NewRegistry(storage, 0, nil),
		Brand:    brand.Mashafy,
		Cookies:  securecookie.New(testHashKey, nil),
	})
	if err != nil {
		t.Fatalf("buildRouter: %v", err)
	}
	return &testEnv{router: router, storage: storage}
}

// client replays the session cookie it was issued, like a browser.
type client struct {
	env    *testEnv
	cookie *http.Cookie
}

func (e *testEnv) client() *client {
	return &client{env: e}
}

func (c *client) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req)
}

// send issues req with the client's session cookie and keeps any cookie
// the server sets.
func (c *client) send(req *http.Request) *httptest.ResponseRecorder {
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.env.router.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessionCookieName {
			if ck.MaxAge < 0 {
				c.cookie = nil
			} else {
				c.cookie = ck
			}
		}
	}
	return rec
}

type stubCatalog struct {
	products    []domain.Product
	listErr     error
	orders      []domain.Order
	ordersErr   error
	createCalls int
	clearCalls  int
	deleted     string
	lastFields  domain.ProductFields
	remote      bool
}

func (s *stubCatalog) Remote() bool {
	return s.remote
}

func (s *stubCatalog) GetProducts(_ context.Context) ([]domain.Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return domain.CloneProducts(s.products), nil
}

func (s *stubCatalog) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			p := p.Clone()
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalog) CreateProduct(_ context.Context, f domain.ProductFields) (*domain.Product, error) {
	s.createCalls++
	s.lastFields = f
	p := f.Apply(domain.Product{ID: "new-id"})
	return &p, nil
}

func (s *stubCatalog) UpdateProduct(_ context.Context, id string, f domain.ProductFields) (*domain.Product, error) {
	s.lastFields = f
	p := f.Apply(domain.Product{ID: id})
	return &p, nil
}

func (s *stubCatalog) DeleteProduct(_ context.Context, id string) error {
	s.deleted = id
	return nil
}

func (s *stubCatalog) ClearProductCache() {
	s.clearCalls++
}

func (s *stubCatalog) GetOrders(_ context.Context) ([]domain.Order, error) {
	return s.orders, s.ordersErr
}

func (s *stubCatalog) UpdateOrderStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return &domain.Order{ID: id, Status: status}, nil
}

func (s *stubCatalog) CheckStock(_ context.Context, _ string, _ int) (bool, error) {
	return true, nil
}

var errRemote = fmt.Errorf("catalog: list products: %w", domain.ErrRemoteUnavailable)
