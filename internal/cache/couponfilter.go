// Package cache provides a bloom-filter guard for coupon code lookups.
//
// Most invalid checkout attempts carry codes that were never registered. The
// filter answers "definitely not registered" without a database round trip;
// possible hits fall through to the underlying repository.
package cache

import (
	"context"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"

	"github.com/nevesmarcos42/pricewise/internal/domain/coupon"
)

var _ coupon.Repository = (*CouponCodeFilter)(nil)

// CouponCodeFilter decorates a coupon.Repository with a bloom-filter negative
// lookup. False positives only cost a database query; false negatives cannot
// occur because every created code is added to the filter.
type CouponCodeFilter struct {
	inner coupon.Repository

	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

// NewCouponCodeFilter wraps repo with a filter sized for the expected number
// of coupon codes and the given false positive rate.
func NewCouponCodeFilter(repo coupon.Repository, expectedCodes uint, fpRate float64) *CouponCodeFilter {
	return &CouponCodeFilter{
		inner:  repo,
		filter: bloom.NewWithEstimates(expectedCodes, fpRate),
	}
}

// WarmUp seeds the filter with all codes currently in the repository.
func (f *CouponCodeFilter) WarmUp(ctx context.Context) error {
	coupons, err := f.inner.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list coupons")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range coupons {
		f.filter.AddString(c.Code)
	}
	return nil
}

// FindByCode short-circuits codes the filter has never seen.
func (f *CouponCodeFilter) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	if !f.mightContain(coupon.NormalizeCode(code)) {
		return nil, coupon.ErrNotFound
	}
	return f.inner.FindByCode(ctx, code)
}

// ExistsByCode short-circuits codes the filter has never seen.
func (f *CouponCodeFilter) ExistsByCode(ctx context.Context, code string) (bool, error) {
	if !f.mightContain(coupon.NormalizeCode(code)) {
		return false, nil
	}
	return f.inner.ExistsByCode(ctx, code)
}

// Create delegates to the repository and records the new code in the filter.
func (f *CouponCodeFilter) Create(ctx context.Context, c *coupon.Coupon) error {
	if err := f.inner.Create(ctx, c); err != nil {
		return err
	}

	f.mu.Lock()
	f.filter.AddString(c.Code)
	f.mu.Unlock()
	return nil
}

// List delegates to the repository.
func (f *CouponCodeFilter) List(ctx context.Context) ([]coupon.Coupon, error) {
	return f.inner.List(ctx)
}

// SoftDelete delegates to the repository. The code stays in the filter:
// deleted coupons must remain findable so eligibility checks can report the
// "deleted" reason instead of "not found".
func (f *CouponCodeFilter) SoftDelete(ctx context.Context, id int64) error {
	return f.inner.SoftDelete(ctx, id)
}

func (f *CouponCodeFilter) mightContain(code string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter.TestString(code)
}
