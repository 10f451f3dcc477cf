package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nevesmarcos42/pricewise/internal/domain/coupon"
)

type countingRepo struct {
	byCode  map[string]*coupon.Coupon
	lookups int
}

func (r *countingRepo) FindByCode(_ context.Context, code string) (*coupon.Coupon, error) {
	r.lookups++
	c, ok := r.byCode[coupon.NormalizeCode(code)]
	if !ok {
		return nil, coupon.ErrNotFound
	}
	return c, nil
}

func (r *countingRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	r.lookups++
	_, ok := r.byCode[coupon.NormalizeCode(code)]
	return ok, nil
}

func (r *countingRepo) Create(_ context.Context, c *coupon.Coupon) error {
	r.byCode[c.Code] = c
	return nil
}

func (r *countingRepo) List(_ context.Context) ([]coupon.Coupon, error) {
	out := make([]coupon.Coupon, 0, len(r.byCode))
	for _, c := range r.byCode {
		out = append(out, *c)
	}
	return out, nil
}

func (r *countingRepo) SoftDelete(_ context.Context, _ int64) error { return nil }

func newCountingRepo(codes ...string) *countingRepo {
	byCode := make(map[string]*coupon.Coupon, len(codes))
	for i, code := range codes {
		byCode[code] = &coupon.Coupon{
			ID:         int64(i + 1),
			Code:       code,
			Kind:       coupon.KindPercent,
			Value:      decimal.NewFromInt(10),
			ValidFrom:  time.Now().Add(-time.Hour),
			ValidUntil: time.Now().Add(time.Hour),
		}
	}
	return &countingRepo{byCode: byCode}
}

func TestCouponCodeFilter_SkipsUnknownCodes(t *testing.T) {
	repo := newCountingRepo("promo15")
	f := NewCouponCodeFilter(repo, 1000, 0.01)
	require.NoError(t, f.WarmUp(context.Background()))

	_, err := f.FindByCode(context.Background(), "neverseen")
	require.ErrorIs(t, err, coupon.ErrNotFound)
	assert.Zero(t, repo.lookups, "unknown code must not reach the repository")
}

func TestCouponCodeFilter_PassesKnownCodes(t *testing.T) {
	repo := newCountingRepo("promo15")
	f := NewCouponCodeFilter(repo, 1000, 0.01)
	require.NoError(t, f.WarmUp(context.Background()))

	c, err := f.FindByCode(context.Background(), "PROMO15")
	require.NoError(t, err)
	assert.Equal(t, "promo15", c.Code)
	assert.Equal(t, 1, repo.lookups)
}

func TestCouponCodeFilter_CreateAddsCode(t *testing.T) {
	repo := newCountingRepo()
	f := NewCouponCodeFilter(repo, 1000, 0.01)

	err := f.Create(context.Background(), &coupon.Coupon{
		Code:       "fresh",
		Kind:       coupon.KindFixed,
		Value:      decimal.NewFromInt(5),
		ValidFrom:  time.Now().Add(-time.Hour),
		ValidUntil: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	exists, err := f.ExistsByCode(context.Background(), "fresh")
	require.NoError(t, err)
	assert.True(t, exists)
}
