package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nevesmarcos42/pricewise/internal/domain/coupon"
	"github.com/nevesmarcos42/pricewise/internal/domain/money"
	"github.com/nevesmarcos42/pricewise/internal/domain/order"
)

const (
	createOrderSQL = `INSERT INTO orders
		(id, coupon_id, coupon_code, total_original, discount_applied, total_final, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	createOrderItemSQL = `INSERT INTO order_items
		(order_id, position, product_id, name, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`

	redeemCouponSQL = `INSERT INTO coupon_redemptions (coupon_id, order_id)
		VALUES ($1, $2)`

	listOrdersSQL = `SELECT id, coupon_id, coupon_code, total_original,
		discount_applied, total_final, created_at
		FROM orders ORDER BY created_at, id`

	listOrderItemsSQL = `SELECT order_id, product_id, name, unit_price, quantity
		FROM order_items WHERE order_id = ANY($1::uuid[]) ORDER BY order_id, position`

	couponUsedSQL = `SELECT EXISTS(
		SELECT 1 FROM coupon_redemptions WHERE coupon_id = $1)`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists the order, its line items, and (for one-shot coupons) the
// redemption row in a single transaction. The redemption table's primary key
// guarantees at most one committed order per one-shot coupon; a violation is
// reported as coupon.ErrAlreadyUsed.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.Exec(ctx, createOrderSQL,
		o.ID, o.CouponID, o.CouponCode,
		o.TotalOriginal.Decimal(), o.DiscountApplied.Decimal(), o.TotalFinal.Decimal(),
		o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}

	for i, line := range o.Lines {
		_, err = tx.Exec(ctx, createOrderItemSQL,
			o.ID, i, line.ProductID, line.Name, line.UnitPrice.Decimal(), line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("creating order item %d of %q: %w", i, o.ID, err)
		}
	}

	if o.CouponID != nil && o.CouponOneShot {
		if _, err = tx.Exec(ctx, redeemCouponSQL, *o.CouponID, o.ID); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return coupon.ErrAlreadyUsed
			}
			return fmt.Errorf("redeeming coupon %d: %w", *o.CouponID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing order %q: %w", o.ID, err)
	}
	return nil
}

// List returns all committed orders with their line items.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	itemRows, err := r.pool.Query(ctx, listOrderItemsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			orderID   string
			line      order.Line
			unitPrice decimal.Decimal
		)
		if err := itemRows.Scan(&orderID, &line.ProductID, &line.Name, &unitPrice, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		line.UnitPrice = money.FromDecimal(unitPrice)
		if i, ok := index[orderID]; ok {
			orders[i].Lines = append(orders[i].Lines, line)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	return orders, nil
}

// CouponUsed reports whether a committed order has already redeemed the
// coupon. This backs the pipeline's optimistic fast path; the authoritative
// check is the redemption primary key at commit time.
func (r *OrderRepository) CouponUsed(ctx context.Context, couponID int64) (bool, error) {
	var used bool
	if err := r.pool.QueryRow(ctx, couponUsedSQL, couponID).Scan(&used); err != nil {
		return false, fmt.Errorf("checking coupon %d usage: %w", couponID, err)
	}
	return used, nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o               order.Order
		totalOriginal   decimal.Decimal
		discountApplied decimal.Decimal
		totalFinal      decimal.Decimal
	)
	err := row.Scan(
		&o.ID, &o.CouponID, &o.CouponCode,
		&totalOriginal, &discountApplied, &totalFinal, &o.CreatedAt,
	)
	o.TotalOriginal = money.FromDecimal(totalOriginal)
	o.DiscountApplied = money.FromDecimal(discountApplied)
	o.TotalFinal = money.FromDecimal(totalFinal)
	return o, err
}
