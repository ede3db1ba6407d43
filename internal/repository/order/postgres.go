package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const orderColumns = `id::text, customer_name, customer_email, customer_phone, items, total_price::text, shipping_cost::text, tax::text, final_total::text, status, created_at, COALESCE(notes, '')`

// itemRow is one element of the orders.items JSON column.
type itemRow struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Category      string          `json:"category"`
	SelectedSize  string          `json:"selectedSize,omitempty"`
	SelectedColor string          `json:"selectedColor,omitempty"`
}

type orderRow struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Items         []byte
	TotalPrice    string
	ShippingCost  string
	Tax           string
	FinalTotal    string
	Status        string
	CreatedAt     time.Time
	Notes         string
}

func (r orderRow) toDomain() (domain.Order, error) {
	var items []itemRow
	if len(r.Items) > 0 {
		if err := json.Unmarshal(r.Items, &items); err != nil {
			return domain.Order{}, fmt.Errorf("order %s: decode items: %w", r.ID, err)
		}
	}
	amounts := make([]decimal.Decimal, 4)
	for i, raw := range []string{r.TotalPrice, r.ShippingCost, r.Tax, r.FinalTotal} {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.Order{}, fmt.Errorf("order %s: bad amount %q: %w", r.ID, raw, err)
		}
		amounts[i] = d
	}
	status := domain.OrderStatus(r.Status)
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("order %s: unknown status %q", r.ID, r.Status)
	}

	lines := make([]domain.CartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.CartLine{
			Product: domain.Product{
				ID:       it.ID,
				Name:     it.Name,
				Price:    it.Price,
				Category: it.Category,
			},
			Quantity:      it.Quantity,
			SelectedSize:  it.SelectedSize,
			SelectedColor: it.SelectedColor,
		})
	}
	return domain.Order{
		ID:            r.ID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Items:         lines,
		TotalPrice:    amounts[0],
		ShippingCost:  amounts[1],
		Tax:           amounts[2],
		FinalTotal:    amounts[3],
		Status:        status,
		CreatedAt:     r.CreatedAt,
		Notes:         r.Notes,
	}, nil
}

func scanRow(row pgx.Row) (domain.Order, error) {
	var r orderRow
	if err := row.Scan(&r.ID, &r.CustomerName, &r.CustomerEmail, &r.CustomerPhone, &r.Items, &r.TotalPrice, &r.ShippingCost, &r.Tax, &r.FinalTotal, &r.Status, &r.CreatedAt, &r.Notes); err != nil {
		return domain.Order{}, err
	}
	return r.toDomain()
}

// ItemsJSON encodes order lines the way the items column stores them.
func ItemsJSON(lines []domain.CartLine) ([]byte, error) {
	rows := make([]itemRow, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, itemRow{
			ID:            l.ID,
			Name:          l.Name,
			Price:         l.Price,
			Quantity:      l.Quantity,
			Category:      l.Category,
			SelectedSize:  l.SelectedSize,
			SelectedColor: l.SelectedColor,
		})
	}
	return json.Marshal(rows)
}

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.Order{}
	for rows.Next() {
		o, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	q := `UPDATE orders SET status = $2 WHERE id::text = $1 RETURNING ` + orderColumns
	o, err := scanRow(r.pool.QueryRow(ctx, q, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("order repo: status id=%s status=%s", id, status)
	return &o, nil
}

func (r *postgresRepo) Save(ctx context.Context, o domain.Order) (*domain.Order, error) {
	items, err := ItemsJSON(o.Items)
	if err != nil {
		return nil, fmt.Errorf("order: encode items: %w", err)
	}
	status := o.Status
	if status == "" {
		status = domain.OrderPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidInput, status)
	}
	createdAt := o.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	q := `
INSERT INTO orders (id, customer_name, customer_email, customer_phone, items, total_price, shipping_cost, tax, final_total, status, created_at, notes)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5::jsonb, $6::numeric, $7::numeric, $8::numeric, $9::numeric, $10, $11, NULLIF($12, ''))
ON CONFLICT (id) DO UPDATE SET id = orders.id
RETURNING ` + orderColumns
	saved, err := scanRow(r.pool.QueryRow(ctx, q,
		productrepo.StableID(o.ID), o.CustomerName, o.CustomerEmail, o.CustomerPhone, items,
		o.TotalPrice.String(), o.ShippingCost.String(), o.Tax.String(), o.FinalTotal.String(),
		string(status), createdAt, o.Notes))
	if err != nil {
		r.logger.Printf("order repo: save error=%v", err)
		return nil, err
	}
	r.logger.Printf("order repo: saved id=%s", saved.ID)
	return &saved, nil
}
