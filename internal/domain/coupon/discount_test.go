package coupon

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nevesmarcos42/pricewise/internal/domain/money"
)

func TestComputeDiscount_Percent(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		value int64
		want  string
	}{
		{name: "15 percent of 100", base: "100.00", value: 15, want: "15.00"},
		{name: "15 percent of 40", base: "40.00", value: 15, want: "6.00"},
		{name: "99 percent of 0.02 rounds to 0.02", base: "0.02", value: 99, want: "0.02"},
		{name: "percent above 100 is not capped", base: "10.00", value: 150, want: "15.00"},
		{name: "zero percent", base: "50.00", value: 0, want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Coupon{Kind: KindPercent, Value: decimal.NewFromInt(tt.value)}
			got := ComputeDiscount(c, money.MustParse(tt.base))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestComputeDiscount_Fixed_NotCappedAtBase(t *testing.T) {
	c := &Coupon{Kind: KindFixed, Value: decimal.RequireFromString("25.00")}

	// The raw discount exceeds the base; the cap only happens in ComputeFinal.
	got := ComputeDiscount(c, money.MustParse("10.00"))
	assert.Equal(t, "25.00", got.String())
}

func TestComputeFinal(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		discount string
		want     string
	}{
		{name: "normal subtraction", base: "100.00", discount: "15.00", want: "85.00"},
		{name: "discount equals base", base: "10.00", discount: "10.00", want: "0.00"},
		{name: "discount exceeds base clamps to zero", base: "10.00", discount: "25.00", want: "0.00"},
		{name: "no discount", base: "40.00", discount: "0.00", want: "40.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFinal(money.MustParse(tt.base), money.MustParse(tt.discount))
			assert.Equal(t, tt.want, got.String())
		})
	}
}
