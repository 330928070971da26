package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/shop-inventory/pkg/money"
)

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"0":       "$0.00",
		"4":       "$4.00",
		"2.5":     "$2.50",
		"1234.5":  "$1,234.50",
		"1000000": "$1,000,000.00",
		"-12.345": "-$12.35",
		"0.004":   "$0.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, money.Format(decimal.RequireFromString(in)), in)
	}
}

func TestUnits(t *testing.T) {
	assert.Equal(t, "7", money.Units(7))
	assert.Equal(t, "12,500", money.Units(12500))
}
