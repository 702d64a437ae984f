package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatTZS(t *testing.T) {
	cases := []struct {
		in   decimal.NullDecimal
		want string
	}{
		{decimal.NullDecimal{}, "TZS 0"},
		{decimal.NewNullDecimal(decimal.RequireFromString("60000.00")), "TZS 60,000"},
		{decimal.NewNullDecimal(decimal.RequireFromString("999.99")), "TZS 1,000"},
		{decimal.NewNullDecimal(decimal.RequireFromString("1234567.50")), "TZS 1,234,568"},
		{decimal.NewNullDecimal(decimal.RequireFromString("2.50")), "TZS 2"},
		{decimal.NewNullDecimal(decimal.Zero), "TZS 0"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatTZS(tc.in), "input %v", tc.in.Decimal)
	}
}
