// Package order implements the checkout pricing pipeline: product resolution,
// monetary aggregation, coupon eligibility, discount computation, and durable
// order persistence.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"github.com/nevesmarcos42/pricewise/internal/domain/money"
)

// Sentinel errors for order validation.
var (
	// ErrEmptyItems is returned when an order request contains no items.
	ErrEmptyItems = errors.New("order must contain at least one item")
	// ErrAmountTooSmall is returned when the discounted total would fall
	// below the minimum payable amount of 0.01.
	ErrAmountTooSmall = errors.New("final amount below minimum payable value")
)

// ProductNotFoundError indicates a requested product does not exist.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	ProductID int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %d", e.ProductID)
}

// Line is a resolved line item. UnitPrice is the catalog price captured at
// order time; later catalog changes never affect persisted orders.
type Line struct {
	ProductID int64
	Name      string
	UnitPrice money.Money
	Quantity  int
}

// Subtotal returns UnitPrice * Quantity.
func (l Line) Subtotal() money.Money {
	return l.UnitPrice.MulInt(l.Quantity)
}

// Order is a committed checkout. It owns its lines; the coupon reference is
// non-owning and optional. TotalFinal = max(0, TotalOriginal - DiscountApplied)
// and is always at least 0.01.
type Order struct {
	ID              string
	Lines           []Line
	CouponID        *int64
	CouponCode      string
	CouponOneShot   bool
	TotalOriginal   money.Money
	DiscountApplied money.Money
	TotalFinal      money.Money
	CreatedAt       time.Time
}

// Repository defines persistence for orders.
//
// Create must persist the order and its lines atomically, and when the order
// consumes a one-shot coupon it must record the redemption in the same unit
// of work, returning coupon.ErrAlreadyUsed if another order got there first.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]Order, error)
	CouponUsed(ctx context.Context, couponID int64) (bool, error)
}

// Summary is the caller-facing result of a committed order.
type Summary struct {
	OrderID         string
	ProductNames    []string
	TotalOriginal   money.Money
	DiscountApplied money.Money
	TotalFinal      money.Money
	CouponCode      string
	CreatedAt       time.Time
}

// CartSummary is the result of a cart preview: same pricing math as an order,
// but nothing is persisted.
type CartSummary struct {
	ProductNames      []string
	TotalOriginal     money.Money
	DiscountAmount    money.Money
	TotalWithDiscount money.Money
	AppliedCoupon     string
}
