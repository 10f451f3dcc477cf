package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nevesmarcos42/pricewise/internal/domain/money"
	"github.com/nevesmarcos42/pricewise/internal/domain/product"
	"github.com/nevesmarcos42/pricewise/internal/domain/softdelete"
)

const (
	productColumns = `id, name, description, price, stock, deleted_at, created_at, updated_at`

	getProductByIDSQL = `SELECT ` + productColumns + ` FROM products
		WHERE id = $1 AND deleted_at IS NULL`

	getProductsByIDsSQL = `SELECT ` + productColumns + ` FROM products
		WHERE id = ANY($1) AND deleted_at IS NULL`

	listProductsSQL = `SELECT ` + productColumns + ` FROM products
		WHERE deleted_at IS NULL
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		  AND ($2::numeric IS NULL OR price >= $2)
		  AND ($3::numeric IS NULL OR price <= $3)
		ORDER BY id
		LIMIT $4 OFFSET $5`

	existsProductByNameSQL = `SELECT EXISTS(
		SELECT 1 FROM products WHERE lower(name) = lower($1) AND deleted_at IS NULL)`

	createProductSQL = `INSERT INTO products (name, description, price, stock, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
)

const defaultPerPage = 20

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// GetByID returns a single product. Soft-deleted products are treated as
// absent.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	rows, err := r.pool.Query(ctx, getProductByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}
	return &p, nil
}

// GetByIDs returns products matching any of the given IDs in a single query.
// Missing IDs are simply absent from the result.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx, getProductsByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("getting products by ids: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// List returns catalog products matching the filter, paged.
func (r *ProductRepository) List(ctx context.Context, f product.Filter) ([]product.Product, error) {
	perPage := f.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	page := f.Page
	if page < 1 {
		page = 1
	}

	var minPrice, maxPrice *decimal.Decimal
	if f.MinPrice != nil {
		d := f.MinPrice.Decimal()
		minPrice = &d
	}
	if f.MaxPrice != nil {
		d := f.MaxPrice.Decimal()
		maxPrice = &d
	}

	rows, err := r.pool.Query(ctx, listProductsSQL,
		f.Search, minPrice, maxPrice, perPage, (page-1)*perPage,
	)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// ExistsByName reports whether an active product with the given name exists
// (case-insensitive).
func (r *ProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, existsProductByNameSQL, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking product name %q: %w", name, err)
	}
	return exists, nil
}

// Create persists a new product and fills in its generated ID. A concurrent
// duplicate name surfaces as product.ErrNameTaken via the unique index.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	err := r.pool.QueryRow(ctx, createProductSQL,
		p.Name, p.Description, p.Price.Decimal(), p.Stock, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return product.ErrNameTaken
		}
		return fmt.Errorf("creating product %q: %w", p.Name, err)
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (product.Product, error) {
	var (
		p         product.Product
		price     decimal.Decimal
		deletedAt *time.Time
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &price, &p.Stock,
		&deletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	p.Price = money.FromDecimal(price)
	p.Deletion = softdelete.FromTimestamp(deletedAt)
	return p, err
}
