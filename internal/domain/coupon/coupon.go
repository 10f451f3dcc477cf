// Package coupon holds the coupon entity, eligibility rules, and discount
// calculation.
package coupon

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/nevesmarcos42/pricewise/internal/domain/softdelete"
)

// MaxCodeLength is the longest accepted coupon code, matching the width of
// the code column.
const MaxCodeLength = 20

// Kind enumerates the supported discount formulas.
type Kind string

const (
	// KindFixed subtracts a fixed monetary amount from the order total.
	KindFixed Kind = "fixed"
	// KindPercent subtracts a percentage of the order total.
	KindPercent Kind = "percent"
)

// Sentinel errors surfaced by coupon lookup, creation, and eligibility checks.
var (
	// ErrNotFound is returned when no coupon exists for a code.
	ErrNotFound = errors.New("coupon not found")
	// ErrDeleted is returned when the coupon has been soft-deleted.
	ErrDeleted = errors.New("coupon deleted")
	// ErrNotInWindow is returned when the check time falls outside the
	// coupon's validity window.
	ErrNotInWindow = errors.New("coupon expired or not yet valid")
	// ErrAlreadyUsed is returned when a one-shot coupon has already been
	// consumed by a committed order.
	ErrAlreadyUsed = errors.New("coupon already used")
	// ErrCodeTaken is returned on creation when the code is already registered.
	ErrCodeTaken = errors.New("coupon code already exists")
	// ErrCodeRequired is returned on creation when the code is blank after
	// normalization.
	ErrCodeRequired = errors.New("coupon code required")
	// ErrCodeTooLong is returned on creation when the normalized code exceeds
	// MaxCodeLength.
	ErrCodeTooLong = errors.New("coupon code too long")
	// ErrInvalidWindow is returned on creation when validUntil precedes validFrom.
	ErrInvalidWindow = errors.New("validUntil must not be before validFrom")
	// ErrInvalidKind is returned on creation for an unknown discount kind.
	ErrInvalidKind = errors.New("unknown discount kind")
)

// Coupon is a discount definition. Code is stored trimmed and lower-cased;
// the validity window [ValidFrom, ValidUntil] is inclusive on both ends.
type Coupon struct {
	ID         int64
	Code       string
	Kind       Kind
	Value      decimal.Decimal
	OneShot    bool
	ValidFrom  time.Time
	ValidUntil time.Time
	Deletion   softdelete.State
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// NormalizeCode trims surrounding whitespace and lower-cases a coupon code.
// Both storage and lookup go through this normalization.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Repository provides persistence for coupons. FindByCode and ExistsByCode
// match codes case-insensitively; soft-deleted coupons are still returned by
// FindByCode so the eligibility check can report the precise reason.
type Repository interface {
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, c *Coupon) error
	List(ctx context.Context) ([]Coupon, error)
	SoftDelete(ctx context.Context, id int64) error
}
