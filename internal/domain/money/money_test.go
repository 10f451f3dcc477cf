package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "two fractional digits", input: "19.90", want: "19.90"},
		{name: "integer amount", input: "100", want: "100.00"},
		{name: "one fractional digit", input: "4.5", want: "4.50"},
		{name: "negative amount", input: "-3.25", want: "-3.25"},
		{name: "three fractional digits rejected", input: "1.999", wantErr: true},
		{name: "garbage rejected", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestArithmetic(t *testing.T) {
	a := MustParse("10.00")
	b := MustParse("2.50")

	assert.Equal(t, "12.50", a.Add(b).String())
	assert.Equal(t, "7.50", a.Sub(b).String())
	assert.Equal(t, "7.50", b.MulInt(3).String())
	assert.Equal(t, "-2.50", Zero.Sub(b).String())
}

func TestPercent_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		base    string
		percent int64
		want    string
	}{
		{base: "100.00", percent: 15, want: "15.00"},
		{base: "40.00", percent: 15, want: "6.00"},
		// 0.02 * 99% = 0.0198 -> rounds to 0.02
		{base: "0.02", percent: 99, want: "0.02"},
		// 10.01 * 5% = 0.5005 -> 0.50, the third fractional digit rounds down
		{base: "10.01", percent: 5, want: "0.50"},
		// 10.10 * 5% = 0.505 -> half rounds up to 0.51
		{base: "10.10", percent: 5, want: "0.51"},
		// above 100% is not capped
		{base: "10.00", percent: 150, want: "15.00"},
	}

	for _, tt := range tests {
		got := MustParse(tt.base).Percent(decimal.NewFromInt(tt.percent))
		assert.Equal(t, tt.want, got.String(), "%s * %d%%", tt.base, tt.percent)
	}
}

func TestClampZero(t *testing.T) {
	assert.Equal(t, "0.00", MustParse("5.00").Sub(MustParse("9.00")).ClampZero().String())
	assert.Equal(t, "4.00", MustParse("9.00").Sub(MustParse("5.00")).ClampZero().String())
	assert.Equal(t, "0.00", Zero.ClampZero().String())
}

func TestAtLeastCent(t *testing.T) {
	assert.True(t, MustParse("0.01").AtLeastCent())
	assert.True(t, MustParse("10.00").AtLeastCent())
	assert.False(t, Zero.AtLeastCent())
	assert.False(t, MustParse("-0.01").AtLeastCent())
}

func TestFromCents(t *testing.T) {
	assert.Equal(t, "0.01", FromCents(1).String())
	assert.Equal(t, "12.34", FromCents(1234).String())
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		Total Money `json:"total"`
	}

	out, err := json.Marshal(payload{Total: MustParse("34.00")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":"34.00"}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"total":"12.50"}`), &in))
	assert.True(t, in.Total.Equal(MustParse("12.50")))

	// Bare JSON numbers are accepted too.
	require.NoError(t, json.Unmarshal([]byte(`{"total":12.5}`), &in))
	assert.True(t, in.Total.Equal(MustParse("12.50")))
}
