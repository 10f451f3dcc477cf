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

	"github.com/nevesmarcos42/pricewise/internal/domain/coupon"
	"github.com/nevesmarcos42/pricewise/internal/domain/softdelete"
)

const (
	couponColumns = `id, code, kind, value, one_shot, valid_from, valid_until,
		deleted_at, created_at, updated_at`

	// Soft-deleted coupons are returned on purpose: the eligibility check
	// reports "deleted" instead of "not found" for them.
	getCouponByCodeSQL = `SELECT ` + couponColumns + ` FROM coupons
		WHERE lower(code) = lower(btrim($1))`

	existsCouponByCodeSQL = `SELECT EXISTS(
		SELECT 1 FROM coupons WHERE lower(code) = lower(btrim($1)))`

	createCouponSQL = `INSERT INTO coupons
		(code, kind, value, one_shot, valid_from, valid_until, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	listCouponsSQL = `SELECT ` + couponColumns + ` FROM coupons ORDER BY id`

	softDeleteCouponSQL = `UPDATE coupons SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`
)

var _ coupon.Repository = (*CouponRepository)(nil)

// CouponRepository implements coupon.Repository backed by PostgreSQL.
type CouponRepository struct {
	pool *pgxpool.Pool
}

// NewCouponRepository returns a CouponRepository that uses the given pool.
func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// FindByCode looks up a coupon by its code, case-insensitively and ignoring
// surrounding whitespace. Returns coupon.ErrNotFound when no coupon matches.
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	rows, err := r.pool.Query(ctx, getCouponByCodeSQL, code)
	if err != nil {
		return nil, fmt.Errorf("finding coupon by code %q: %w", code, err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCoupon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, coupon.ErrNotFound
		}
		return nil, fmt.Errorf("finding coupon by code %q: %w", code, err)
	}
	return &c, nil
}

// ExistsByCode reports whether any coupon is registered under the code.
func (r *CouponRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, existsCouponByCodeSQL, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking coupon code %q: %w", code, err)
	}
	return exists, nil
}

// Create persists a new coupon and fills in its generated ID. A concurrent
// duplicate code surfaces as coupon.ErrCodeTaken via the unique index.
func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	err := r.pool.QueryRow(ctx, createCouponSQL,
		c.Code, string(c.Kind), c.Value, c.OneShot, c.ValidFrom, c.ValidUntil, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return coupon.ErrCodeTaken
		}
		return fmt.Errorf("creating coupon %q: %w", c.Code, err)
	}
	return nil
}

// List returns all coupons, including soft-deleted ones.
func (r *CouponRepository) List(ctx context.Context) ([]coupon.Coupon, error) {
	rows, err := r.pool.Query(ctx, listCouponsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing coupons: %w", err)
	}
	return pgx.CollectRows(rows, scanCoupon)
}

// SoftDelete marks a coupon deleted. Deleting an already-deleted or missing
// coupon returns coupon.ErrNotFound.
func (r *CouponRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, softDeleteCouponSQL, id)
	if err != nil {
		return fmt.Errorf("deleting coupon %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return coupon.ErrNotFound
	}
	return nil
}

func scanCoupon(row pgx.CollectableRow) (coupon.Coupon, error) {
	var (
		c         coupon.Coupon
		kind      string
		deletedAt *time.Time
	)
	err := row.Scan(
		&c.ID, &c.Code, &kind, &c.Value, &c.OneShot,
		&c.ValidFrom, &c.ValidUntil, &deletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	c.Kind = coupon.Kind(kind)
	c.Deletion = softdelete.FromTimestamp(deletedAt)
	return c, err
}
