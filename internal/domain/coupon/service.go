package coupon

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// CreateRequest holds the input for registering a new coupon.
type CreateRequest struct {
	Code       string
	Kind       Kind
	Value      decimal.Decimal
	OneShot    bool
	ValidFrom  time.Time
	ValidUntil time.Time
}

// Service manages the coupon catalog: creation with code uniqueness and
// window validation, listing, lookup, and soft deletion.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a coupon Service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create registers a new coupon. The code is normalized before the length and
// uniqueness checks and storage. Returns ErrCodeTaken when the code is already
// registered, ErrCodeTooLong when it exceeds MaxCodeLength, ErrInvalidWindow
// when validUntil precedes validFrom, and ErrInvalidKind for an unknown
// discount kind. Percent values above 100 are accepted; the order
// pipeline's final clamp keeps totals non-negative.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Coupon, error) {
	code := NormalizeCode(req.Code)
	if code == "" {
		return nil, ErrCodeRequired
	}
	if len(code) > MaxCodeLength {
		return nil, ErrCodeTooLong
	}
	if req.Kind != KindFixed && req.Kind != KindPercent {
		return nil, ErrInvalidKind
	}
	if req.ValidUntil.Before(req.ValidFrom) {
		return nil, ErrInvalidWindow
	}

	exists, err := s.repo.ExistsByCode(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "check code")
	}
	if exists {
		return nil, ErrCodeTaken
	}

	c := &Coupon{
		Code:       code,
		Kind:       req.Kind,
		Value:      req.Value,
		OneShot:    req.OneShot,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
		CreatedAt:  s.now(),
	}
	// The repository maps a concurrent duplicate insert to ErrCodeTaken via
	// the unique index, so the pre-check above is only a fast path.
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all coupons, including soft-deleted ones.
func (s *Service) List(ctx context.Context) ([]Coupon, error) {
	return s.repo.List(ctx)
}

// GetByCode looks up a coupon by its normalized code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	return s.repo.FindByCode(ctx, NormalizeCode(code))
}

// Delete soft-deletes a coupon. Deleted coupons stay visible to lookups but
// are never eligible.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}
