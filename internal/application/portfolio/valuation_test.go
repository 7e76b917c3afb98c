package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
)

func coin(price, change24h string) domain.Coin {
	return domain.Coin{
		ID:                       "bitcoin",
		Name:                     "Bitcoin",
		CurrentPrice:             decimal.RequireFromString(price),
		PriceChangePercentage24h: decimal.RequireFromString(change24h),
	}
}

func TestCurrentValue(t *testing.T) {
	got := CurrentValue(decimal.RequireFromString("0.5"), coin("50000", "0"))
	assert.True(t, got.Equal(decimal.RequireFromString("25000")), "got %s", got)
}

func TestImpliedInvested(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		price    string
		change   string
		want     string
	}{
		{name: "flat", quantity: "1", price: "100", change: "0", want: "100"},
		{name: "up 25 percent", quantity: "2", price: "125", change: "25", want: "200"},
		{name: "down 50 percent", quantity: "1", price: "50", change: "-50", want: "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImpliedInvested(decimal.RequireFromString(tt.quantity), coin(tt.price, tt.change))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestImpliedInvestedFullCrash(t *testing.T) {
	// a -100% change would divide by zero; it values to nothing instead
	got := ImpliedInvested(decimal.NewFromInt(1), coin("0", "-100"))
	assert.True(t, got.IsZero())
}

func TestSummarize(t *testing.T) {
	holdings := []Holding{
		{CurrentValue: decimal.RequireFromString("125"), ImpliedInvested: decimal.RequireFromString("100")},
		{CurrentValue: decimal.RequireFromString("75"), ImpliedInvested: decimal.RequireFromString("100")},
	}

	summary := Summarize(holdings)
	assert.True(t, summary.CurrentValue.Equal(decimal.RequireFromString("200")))
	assert.True(t, summary.InvestedValue.Equal(decimal.RequireFromString("200")))
	assert.True(t, summary.Returns.IsZero())
	assert.True(t, summary.ReturnsPct.IsZero())
}

func TestSummarizeReturns(t *testing.T) {
	holdings := []Holding{
		{CurrentValue: decimal.RequireFromString("150"), ImpliedInvested: decimal.RequireFromString("100")},
	}

	summary := Summarize(holdings)
	assert.True(t, summary.Returns.Equal(decimal.RequireFromString("50")))
	assert.True(t, summary.ReturnsPct.Equal(decimal.RequireFromString("50")), "got %s", summary.ReturnsPct)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	assert.True(t, summary.CurrentValue.IsZero())
	assert.True(t, summary.InvestedValue.IsZero())
	assert.True(t, summary.Returns.IsZero())
	// never NaN or a division by zero
	assert.True(t, summary.ReturnsPct.IsZero())
}
