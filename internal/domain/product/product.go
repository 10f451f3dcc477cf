// Package product holds the catalog entity and its service.
package product

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/nevesmarcos42/pricewise/internal/domain/money"
	"github.com/nevesmarcos42/pricewise/internal/domain/softdelete"
)

var (
	// ErrNotFound is returned when a requested product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrNameTaken is returned on creation when the name is already in use.
	ErrNameTaken = errors.New("product name already exists")
	// ErrInvalidPrice is returned when a price is below the minimum of 0.01.
	ErrInvalidPrice = errors.New("price must be at least 0.01")
	// ErrNameRequired is returned on creation when the name is blank after
	// trimming.
	ErrNameRequired = errors.New("product name required")
)

// Product is a catalog item. Price always carries two fractional digits and
// is at least 0.01.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       money.Money
	Stock       int
	Deletion    softdelete.State
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Filter narrows and pages catalog listings. Zero values mean "no constraint";
// PerPage falls back to a default when unset.
type Filter struct {
	Search   string
	MinPrice *money.Money
	MaxPrice *money.Money
	Page     int
	PerPage  int
}

// Repository defines persistence for the catalog. GetByIDs omits missing and
// soft-deleted products from its result; callers detect absence themselves.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Product, error)
	List(ctx context.Context, f Filter) ([]Product, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, p *Product) error
}
