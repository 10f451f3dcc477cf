// Package money provides a fixed-point monetary amount with exactly two
// fractional digits, backed by exact decimal arithmetic.
package money

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money is a monetary amount with two fractional digits. The zero value is
// 0.00 and ready to use. All operations return a new value; Money is never
// mutated in place.
type Money struct {
	d decimal.Decimal
}

// Zero is the 0.00 amount.
var Zero = Money{}

// Parse converts a decimal string such as "19.90" into Money.
// Amounts with more than two fractional digits are rejected rather than
// silently rounded.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, errors.Wrapf(err, "parse amount %q", s)
	}
	if d.Exponent() < -2 {
		return Zero, errors.Errorf("amount %q has more than two fractional digits", s)
	}
	return Money{d: d}, nil
}

// MustParse is like Parse but panics on invalid input. Intended for tests and
// constants.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromDecimal converts an arbitrary decimal into Money, rounding half-up to
// two fractional digits.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d.Round(2)}
}

// FromCents converts an integer number of cents into Money.
func FromCents(cents int64) Money {
	return Money{d: decimal.New(cents, -2)}
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Sub returns m - o. The result may be negative; use ClampZero to floor it.
func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// MulInt returns m multiplied by a plain integer quantity.
func (m Money) MulInt(n int) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(int64(n)))}
}

// Percent returns m * p / 100, rounded half-up to two fractional digits.
// This is the single rounding point for percentage discounts.
func (m Money) Percent(p decimal.Decimal) Money {
	return Money{d: m.d.Mul(p).Div(hundred).Round(2)}
}

// ClampZero floors the amount at zero: max(m, 0).
func (m Money) ClampZero() Money {
	if m.d.IsNegative() {
		return Zero
	}
	return m
}

// Cmp compares m and o: -1 if m < o, 0 if equal, +1 if m > o.
func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

// Equal reports whether m and o represent the same amount.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

// LessThan reports whether m < o.
func (m Money) LessThan(o Money) bool {
	return m.d.LessThan(o.d)
}

// IsNegative reports whether m < 0.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// IsZero reports whether m == 0.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// AtLeastCent reports whether m >= 0.01, the minimum payable amount.
func (m Money) AtLeastCent() bool {
	return m.d.GreaterThanOrEqual(decimal.New(1, -2))
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// String formats the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// MarshalJSON encodes the amount as a quoted decimal string, e.g. "19.90".
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
