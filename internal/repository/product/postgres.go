package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const productColumns = `id::text, name, COALESCE(description, ''), price::text, category, stock, COALESCE(image_url, ''), COALESCE(sizes, '{}'), COALESCE(colors, '{}'), featured, created_at`

// productRow mirrors the products table. It is checked before it becomes a
// domain.Product.
type productRow struct {
	ID          string
	Name        string
	Description string
	Price       string
	Category    string
	Stock       int
	ImageURL    string
	Sizes       []string
	Colors      []string
	Featured    bool
	CreatedAt   time.Time
}

func (r productRow) toDomain() (domain.Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s: bad price %q: %w", r.ID, r.Price, err)
	}
	if price.IsNegative() {
		return domain.Product{}, fmt.Errorf("product %s: negative price %s", r.ID, r.Price)
	}
	if r.Stock < 0 {
		return domain.Product{}, fmt.Errorf("product %s: negative stock %d", r.ID, r.Stock)
	}
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		Category:    r.Category,
		Image:       r.ImageURL,
		Sizes:       r.Sizes,
		Colors:      r.Colors,
		Stock:       r.Stock,
		Featured:    r.Featured,
		CreatedAt:   r.CreatedAt,
	}, nil
}

func scanRow(row pgx.Row) (domain.Product, error) {
	var r productRow
	if err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Price, &r.Category, &r.Stock, &r.ImageURL, &r.Sizes, &r.Colors, &r.Featured, &r.CreatedAt); err != nil {
		return domain.Product{}, err
	}
	return r.toDomain()
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

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id::text = $1`
	p, err := scanRow(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, f domain.ProductFields) (*domain.Product, error) {
	q := `
INSERT INTO products (name, description, price, category, stock, image_url, sizes, colors, featured)
VALUES ($1, NULLIF($2, ''), $3::numeric, $4, $5, NULLIF($6, ''), $7, $8, $9)
RETURNING ` + productColumns
	p, err := scanRow(r.pool.QueryRow(ctx, q, f.Name, f.Description, f.Price.String(), f.Category, f.Stock, f.Image, nonNil(f.Sizes), nonNil(f.Colors), f.Featured))
	if err != nil {
		r.logger.Printf("product repo: create name=%q error=%v", f.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s", p.ID)
	return &p, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, f domain.ProductFields) (*domain.Product, error) {
	q := `
UPDATE products
SET name = $2,
    description = NULLIF($3, ''),
    price = $4::numeric,
    category = $5,
    stock = $6,
    image_url = NULLIF($7, ''),
    sizes = $8,
    colors = $9,
    featured = $10
WHERE id::text = $1
RETURNING ` + productColumns
	p, err := scanRow(r.pool.QueryRow(ctx, q, id, f.Name, f.Description, f.Price.String(), f.Category, f.Stock, f.Image, nonNil(f.Sizes), nonNil(f.Colors), f.Featured))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("product repo: updated id=%s", id)
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, in domain.Product) (*domain.Product, error) {
	id := StableID(in.ID)
	if id == "" {
		return r.Create(ctx, domain.FieldsOf(in))
	}
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	q := `
INSERT INTO products (id, name, description, price, category, stock, image_url, sizes, colors, featured, created_at)
VALUES ($1::uuid, $2, NULLIF($3, ''), $4::numeric, $5, $6, NULLIF($7, ''), $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    category = EXCLUDED.category,
    stock = EXCLUDED.stock,
    image_url = EXCLUDED.image_url,
    sizes = EXCLUDED.sizes,
    colors = EXCLUDED.colors,
    featured = EXCLUDED.featured
RETURNING ` + productColumns
	p, err := scanRow(r.pool.QueryRow(ctx, q, id, in.Name, in.Description, in.Price.String(), in.Category, in.Stock, in.Image, nonNil(in.Sizes), nonNil(in.Colors), in.Featured, createdAt))
	if err != nil {
		r.logger.Printf("product repo: upsert id=%s error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted id=%s", p.ID)
	return &p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id::text = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: deleted id=%s", id)
	return nil
}

func (r *postgresRepo) HasStock(ctx context.Context, id string, quantity int) (bool, error) {
	var stock int
	err := r.pool.QueryRow(ctx, `SELECT stock FROM products WHERE id::text = $1`, id).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, err
	}
	return stock >= quantity, nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
