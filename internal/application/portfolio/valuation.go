package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Holding joins a stored position with its live market entry.
type Holding struct {
	Position *domain.Position `json:"position"`
	Coin     *domain.Coin     `json:"coin,omitempty"`

	CurrentValue decimal.Decimal `json:"current_value"`
	// ImpliedInvested estimates the pre-24h-change cost basis from
	// price drift. It is deliberately not the ledger's investedAmount;
	// both are exposed side by side.
	ImpliedInvested decimal.Decimal `json:"implied_invested"`
}

// Summary aggregates the portfolio the way the app's summary card did.
type Summary struct {
	CurrentValue  decimal.Decimal `json:"current_value"`
	InvestedValue decimal.Decimal `json:"invested_value"`
	Returns       decimal.Decimal `json:"returns"`
	ReturnsPct    decimal.Decimal `json:"returns_pct"`
}

// CurrentValue prices a quantity at the coin's current price.
func CurrentValue(quantity decimal.Decimal, coin domain.Coin) decimal.Decimal {
	return quantity.Mul(coin.CurrentPrice)
}

// ImpliedInvested backs the current value out of the 24h change:
// quantity * price / (1 + change/100). A change of exactly -100%
// contributes nothing instead of dividing by zero.
func ImpliedInvested(quantity decimal.Decimal, coin domain.Coin) decimal.Decimal {
	divisor := decimal.NewFromInt(1).Add(coin.PriceChangePercentage24h.Div(hundred))
	if divisor.IsZero() {
		return decimal.Zero
	}
	return quantity.Mul(coin.CurrentPrice).Div(divisor)
}

// Summarize totals the holdings and derives returns. ReturnsPct is zero
// when nothing is invested, never NaN or infinite.
func Summarize(holdings []Holding) Summary {
	summary := Summary{
		CurrentValue:  decimal.Zero,
		InvestedValue: decimal.Zero,
		Returns:       decimal.Zero,
		ReturnsPct:    decimal.Zero,
	}

	for _, h := range holdings {
		summary.CurrentValue = summary.CurrentValue.Add(h.CurrentValue)
		summary.InvestedValue = summary.InvestedValue.Add(h.ImpliedInvested)
	}

	summary.Returns = summary.CurrentValue.Sub(summary.InvestedValue)
	if summary.InvestedValue.IsPositive() {
		summary.ReturnsPct = summary.Returns.Div(summary.InvestedValue).Mul(hundred)
	}
	return summary
}
