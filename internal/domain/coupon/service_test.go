package coupon

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCouponRepo struct {
	byCode  map[string]*Coupon
	created *Coupon
	nextID  int64
}

func newMockCouponRepo() *mockCouponRepo {
	return &mockCouponRepo{byCode: make(map[string]*Coupon), nextID: 1}
}

func (m *mockCouponRepo) FindByCode(_ context.Context, code string) (*Coupon, error) {
	c, ok := m.byCode[NormalizeCode(code)]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (m *mockCouponRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, ok := m.byCode[NormalizeCode(code)]
	return ok, nil
}

func (m *mockCouponRepo) Create(_ context.Context, c *Coupon) error {
	if _, ok := m.byCode[c.Code]; ok {
		return ErrCodeTaken
	}
	c.ID = m.nextID
	m.nextID++
	m.byCode[c.Code] = c
	m.created = c
	return nil
}

func (m *mockCouponRepo) List(_ context.Context) ([]Coupon, error) {
	out := make([]Coupon, 0, len(m.byCode))
	for _, c := range m.byCode {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCouponRepo) SoftDelete(_ context.Context, _ int64) error {
	return nil
}

func validCreateRequest() CreateRequest {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return CreateRequest{
		Code:       "PROMO15",
		Kind:       KindPercent,
		Value:      decimal.NewFromInt(15),
		ValidFrom:  now.Add(-24 * time.Hour),
		ValidUntil: now.Add(24 * time.Hour),
	}
}

func TestServiceCreate_NormalizesCode(t *testing.T) {
	repo := newMockCouponRepo()
	svc := NewService(repo)

	req := validCreateRequest()
	req.Code = "  PROMO15  "

	c, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "promo15", c.Code)
	assert.NotZero(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestServiceCreate_DuplicateCode(t *testing.T) {
	repo := newMockCouponRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// Same code, different case.
	req := validCreateRequest()
	req.Code = "promo15"
	_, err = svc.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrCodeTaken)
}

func TestServiceCreate_InvalidWindow(t *testing.T) {
	svc := NewService(newMockCouponRepo())

	req := validCreateRequest()
	req.ValidFrom, req.ValidUntil = req.ValidUntil, req.ValidFrom

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidWindow)
}

func TestServiceCreate_WindowBoundsMayBeEqual(t *testing.T) {
	svc := NewService(newMockCouponRepo())

	req := validCreateRequest()
	req.ValidUntil = req.ValidFrom

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
}

func TestServiceCreate_UnknownKind(t *testing.T) {
	svc := NewService(newMockCouponRepo())

	req := validCreateRequest()
	req.Kind = Kind("bogo")

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidKind)
}

func TestServiceCreate_BlankCode(t *testing.T) {
	svc := NewService(newMockCouponRepo())

	req := validCreateRequest()
	req.Code = "   "

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrCodeRequired)
}

func TestServiceCreate_CodeTooLong(t *testing.T) {
	svc := NewService(newMockCouponRepo())

	req := validCreateRequest()
	req.Code = strings.Repeat("x", MaxCodeLength+1)

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrCodeTooLong)

	// Exactly at the limit is fine.
	req.Code = strings.Repeat("x", MaxCodeLength)
	_, err = svc.Create(context.Background(), req)
	require.NoError(t, err)
}

func TestServiceGetByCode_Normalizes(t *testing.T) {
	repo := newMockCouponRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	c, err := svc.GetByCode(context.Background(), " PROMO15 ")
	require.NoError(t, err)
	assert.Equal(t, "promo15", c.Code)

	_, err = svc.GetByCode(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
