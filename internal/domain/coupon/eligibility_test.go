package coupon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nevesmarcos42/pricewise/internal/domain/softdelete"
)

func testCoupon(from, until time.Time) *Coupon {
	return &Coupon{
		ID:         1,
		Code:       "promo15",
		Kind:       KindPercent,
		Value:      decimal.NewFromInt(15),
		ValidFrom:  from,
		ValidUntil: until,
	}
}

func TestCheckEligibility_Instant(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		coupon  *Coupon
		wantErr error
	}{
		{
			name:   "inside window",
			coupon: testCoupon(now.Add(-24*time.Hour), now.Add(24*time.Hour)),
		},
		{
			name:   "exactly at validFrom",
			coupon: testCoupon(now, now.Add(24*time.Hour)),
		},
		{
			name:   "exactly at validUntil",
			coupon: testCoupon(now.Add(-24*time.Hour), now),
		},
		{
			name:    "expired",
			coupon:  testCoupon(now.Add(-240*time.Hour), now.Add(-120*time.Hour)),
			wantErr: ErrNotInWindow,
		},
		{
			name:    "not yet valid",
			coupon:  testCoupon(now.Add(5*24*time.Hour), now.Add(10*24*time.Hour)),
			wantErr: ErrNotInWindow,
		},
		{
			name: "deleted coupon is never eligible",
			coupon: func() *Coupon {
				c := testCoupon(now.Add(-24*time.Hour), now.Add(24*time.Hour))
				c.Deletion = softdelete.DeletedAt(now.Add(-time.Hour))
				return c
			}(),
			wantErr: ErrDeleted,
		},
		{
			name: "deleted wins over expired",
			coupon: func() *Coupon {
				c := testCoupon(now.Add(-240*time.Hour), now.Add(-120*time.Hour))
				c.Deletion = softdelete.DeletedAt(now)
				return c
			}(),
			wantErr: ErrDeleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckEligibility(tt.coupon, now, ModeInstant)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCheckEligibility_CalendarDate(t *testing.T) {
	// Window ends at 09:00 today; an instant check at noon fails, but a
	// date-only check still passes because it is the same calendar day.
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := testCoupon(
		time.Date(2025, 6, 10, 18, 30, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
	)

	require.ErrorIs(t, CheckEligibility(c, now, ModeInstant), ErrNotInWindow)
	require.NoError(t, CheckEligibility(c, now, ModeCalendarDate))

	// The day after the window's last date fails in both modes.
	tomorrow := now.Add(24 * time.Hour)
	require.ErrorIs(t, CheckEligibility(c, tomorrow, ModeInstant), ErrNotInWindow)
	require.ErrorIs(t, CheckEligibility(c, tomorrow, ModeCalendarDate), ErrNotInWindow)
}

func TestCheckEligibility_CalendarDateAcrossZones(t *testing.T) {
	// Window bounds stored in UTC, checked from UTC+10. The window ends
	// 2025-06-15T23:00Z, which is already June 16 on the caller's calendar,
	// so a check on the caller's June 16 must still pass.
	c := testCoupon(
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC),
	)
	sydney := time.FixedZone("UTC+10", 10*3600)
	asOf := time.Date(2025, 6, 16, 8, 0, 0, 0, sydney)

	require.NoError(t, CheckEligibility(c, asOf, ModeCalendarDate))

	// The caller's June 17 is past the converted end date in both modes.
	dayAfter := time.Date(2025, 6, 17, 8, 0, 0, 0, sydney)
	require.ErrorIs(t, CheckEligibility(c, dayAfter, ModeInstant), ErrNotInWindow)
	require.ErrorIs(t, CheckEligibility(c, dayAfter, ModeCalendarDate), ErrNotInWindow)
}

func TestCheckEligibility_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := testCoupon(now.Add(-time.Hour), now.Add(time.Hour))

	first := CheckEligibility(c, now, ModeInstant)
	second := CheckEligibility(c, now, ModeInstant)
	assert.Equal(t, first, second)
	assert.NoError(t, first)
}
