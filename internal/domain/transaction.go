package domain

import "github.com/shopspring/decimal"

type TradeSide string

const (
	SideBuy  TradeSide = "buy"
	SideSell TradeSide = "sell"
)

func (s TradeSide) Valid() bool {
	return s == SideBuy || s == SideSell
}

// TransactionRecord is one immutable entry of the trade log at
// transactions/{uid}/{id}. Records are appended and never rewritten.
type TransactionRecord struct {
	ID         string          `json:"-"`
	CoinName   string          `json:"coinName"`
	CoinSymbol string          `json:"coinSymbol"`
	Quantity   decimal.Decimal `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
	Kind       TradeSide       `json:"type"`
	Timestamp  int64           `json:"timestamp"`
}
