package domain

import "github.com/shopspring/decimal"

// Position is a user's holding of one coin, stored at
// portfolio/{uid}/{coinId}. A position whose quantity reaches zero is
// deleted from the ledger rather than stored as a zero row.
type Position struct {
	CoinID         string          `json:"-"`
	Name           string          `json:"name"`
	Symbol         string          `json:"symbol"`
	Image          string          `json:"image"`
	CurrentPrice   decimal.Decimal `json:"currentPrice"`
	Quantity       decimal.Decimal `json:"quantity"`
	InvestedAmount decimal.Decimal `json:"investedAmount"`
}
