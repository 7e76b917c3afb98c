package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDollarsToCents(t *testing.T) {
	tests := []struct {
		dollars string
		cents   int64
	}{
		{dollars: "0", cents: 0},
		{dollars: "1", cents: 100},
		{dollars: "25.50", cents: 2550},
		{dollars: "0.01", cents: 1},
		{dollars: "10.005", cents: 1001},
		{dollars: "10.004", cents: 1000},
	}
	for _, tt := range tests {
		t.Run(tt.dollars, func(t *testing.T) {
			assert.Equal(t, tt.cents, DollarsToCents(decimal.RequireFromString(tt.dollars)))
		})
	}
}

func TestCentsToDollars(t *testing.T) {
	assert.True(t, CentsToDollars(2550).Equal(decimal.RequireFromString("25.50")))
	assert.True(t, CentsToDollars(0).IsZero())
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$25.50", FormatUSD(decimal.RequireFromString("25.5")))
	assert.Equal(t, "$0.00", FormatUSD(decimal.Zero))
}
