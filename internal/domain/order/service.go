package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/nevesmarcos42/pricewise/internal/domain/coupon"
	"github.com/nevesmarcos42/pricewise/internal/domain/money"
	"github.com/nevesmarcos42/pricewise/internal/domain/product"
)

// ItemRequest is a requested (product, quantity) pair.
type ItemRequest struct {
	ProductID int64
	Quantity  int
}

// ItemsFromProductIDs builds quantity-1 item requests from bare product IDs.
// This is the legacy cart convention where every listed unit counts once.
func ItemsFromProductIDs(ids []int64) []ItemRequest {
	items := make([]ItemRequest, len(ids))
	for i, id := range ids {
		items[i] = ItemRequest{ProductID: id, Quantity: 1}
	}
	return items
}

// CreateRequest holds the input for creating an order. CouponCode is optional;
// blank (after trimming) means no discount is applied.
type CreateRequest struct {
	Items      []ItemRequest
	CouponCode string
}

// Service orchestrates the checkout pipeline. Each call is an independent
// request-scoped operation; the only shared state is the backing store.
type Service struct {
	products   product.Repository
	coupons    coupon.Repository
	orders     Repository
	windowMode coupon.WindowMode
	now        func() time.Time
}

// NewService creates an order Service. The window mode selects how coupon
// validity windows are compared for this service's flows.
func NewService(
	products product.Repository,
	coupons coupon.Repository,
	orders Repository,
	windowMode coupon.WindowMode,
) *Service {
	return &Service{
		products:   products,
		coupons:    coupons,
		orders:     orders,
		windowMode: windowMode,
		now:        time.Now,
	}
}

// CreateOrder runs the full pipeline: validate, price, apply coupon, clamp,
// and persist. Any failure aborts before persistence; no partial order or
// lines are ever written.
func (s *Service) CreateOrder(ctx context.Context, req CreateRequest) (*Summary, error) {
	lines, total, err := s.resolveAndPrice(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	c, discount, err := s.applyCoupon(ctx, req.CouponCode, total)
	if err != nil {
		return nil, err
	}

	final := coupon.ComputeFinal(total, discount)
	if !final.AtLeastCent() {
		return nil, ErrAmountTooSmall
	}

	o := &Order{
		ID:              uuid.New().String(),
		Lines:           lines,
		TotalOriginal:   total,
		DiscountApplied: discount,
		TotalFinal:      final,
		CreatedAt:       s.now(),
	}
	if c != nil {
		id := c.ID
		o.CouponID = &id
		o.CouponCode = c.Code
		o.CouponOneShot = c.OneShot
	}

	// The optimistic one-shot check above can race with a concurrent
	// checkout; the storage layer closes the race and reports it here.
	if err := s.orders.Create(ctx, o); err != nil {
		if errors.Is(err, coupon.ErrAlreadyUsed) {
			return nil, coupon.ErrAlreadyUsed
		}
		return nil, errors.Wrap(err, "create order")
	}

	return &Summary{
		OrderID:         o.ID,
		ProductNames:    productNames(lines),
		TotalOriginal:   o.TotalOriginal,
		DiscountApplied: o.DiscountApplied,
		TotalFinal:      o.TotalFinal,
		CouponCode:      o.CouponCode,
		CreatedAt:       o.CreatedAt,
	}, nil
}

// PreviewCart prices a quantity-less cart (every product counts once) with
// the same rules as CreateOrder but persists nothing. A one-shot coupon that
// was already consumed is still reported as used.
func (s *Service) PreviewCart(ctx context.Context, productIDs []int64, couponCode string) (*CartSummary, error) {
	lines, total, err := s.resolveAndPrice(ctx, ItemsFromProductIDs(productIDs))
	if err != nil {
		return nil, err
	}

	c, discount, err := s.applyCoupon(ctx, couponCode, total)
	if err != nil {
		return nil, err
	}

	final := coupon.ComputeFinal(total, discount)
	if !final.AtLeastCent() {
		return nil, ErrAmountTooSmall
	}

	appliedCode := ""
	if c != nil {
		appliedCode = c.Code
	}
	return &CartSummary{
		ProductNames:      productNames(lines),
		TotalOriginal:     total,
		DiscountAmount:    discount,
		TotalWithDiscount: final,
		AppliedCoupon:     appliedCode,
	}, nil
}

// ListOrders returns summaries of all committed orders.
func (s *Service) ListOrders(ctx context.Context) ([]Summary, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}

	summaries := make([]Summary, len(orders))
	for i, o := range orders {
		summaries[i] = Summary{
			OrderID:         o.ID,
			ProductNames:    productNames(o.Lines),
			TotalOriginal:   o.TotalOriginal,
			DiscountApplied: o.DiscountApplied,
			TotalFinal:      o.TotalFinal,
			CouponCode:      o.CouponCode,
			CreatedAt:       o.CreatedAt,
		}
	}
	return summaries, nil
}

// resolveAndPrice resolves requested items against the catalog in one batch
// and sums unitPrice * quantity. A single missing product fails the whole
// operation; partial pricing is never returned.
func (s *Service) resolveAndPrice(ctx context.Context, items []ItemRequest) ([]Line, money.Money, error) {
	if len(items) == 0 {
		return nil, money.Zero, ErrEmptyItems
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, money.Zero, &InvalidQuantityError{ProductID: item.ProductID}
		}
		ids[i] = item.ProductID
	}

	fetched, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, money.Zero, errors.Wrap(err, "get products")
	}

	// GetByIDs silently omits missing IDs, so mismatches are detected here.
	byID := make(map[int64]product.Product, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}

	lines := make([]Line, len(items))
	total := money.Zero
	for i, item := range items {
		p, ok := byID[item.ProductID]
		if !ok {
			return nil, money.Zero, &ProductNotFoundError{ProductID: item.ProductID}
		}
		lines[i] = Line{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
		}
		total = total.Add(lines[i].Subtotal())
	}
	return lines, total, nil
}

// applyCoupon looks up and checks the coupon for the given code and computes
// the raw discount on base. A blank code skips discounting entirely.
func (s *Service) applyCoupon(ctx context.Context, code string, base money.Money) (*coupon.Coupon, money.Money, error) {
	code = coupon.NormalizeCode(code)
	if code == "" {
		return nil, money.Zero, nil
	}

	c, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, coupon.ErrNotFound) {
			return nil, money.Zero, coupon.ErrNotFound
		}
		return nil, money.Zero, errors.Wrap(err, "lookup coupon")
	}

	if err := coupon.CheckEligibility(c, s.now(), s.windowMode); err != nil {
		return nil, money.Zero, err
	}

	// Optimistic fast path; the storage layer enforces this again at commit.
	if c.OneShot {
		used, err := s.orders.CouponUsed(ctx, c.ID)
		if err != nil {
			return nil, money.Zero, errors.Wrap(err, "check coupon usage")
		}
		if used {
			return nil, money.Zero, coupon.ErrAlreadyUsed
		}
	}

	return c, coupon.ComputeDiscount(c, base), nil
}

func productNames(lines []Line) []string {
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.Name
	}
	return names
}
