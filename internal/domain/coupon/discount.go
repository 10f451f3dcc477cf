package coupon

import "github.com/nevesmarcos42/pricewise/internal/domain/money"

// ComputeDiscount returns the raw discount a coupon yields on base.
//
// Fixed coupons return their value as-is: the discount is NOT capped at base
// here, capping happens in ComputeFinal. Percent coupons return
// round(base * value / 100) with the money rounding rule. Percent values
// above 100 are not clamped; the final clamp keeps the total non-negative.
func ComputeDiscount(c *Coupon, base money.Money) money.Money {
	switch c.Kind {
	case KindFixed:
		return money.FromDecimal(c.Value)
	case KindPercent:
		return base.Percent(c.Value)
	default:
		return money.Zero
	}
}

// ComputeFinal returns max(0, base - discount). A discount larger than the
// base caps the payable amount at zero instead of going negative.
func ComputeFinal(base, discount money.Money) money.Money {
	return base.Sub(discount).ClampZero()
}
