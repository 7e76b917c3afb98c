package trade

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
)

type ITradeService interface {
	// Execute runs one validated buy or sell: parses the requested USD
	// amount, computes the coin quantity at the current price, checks
	// funds or holdings, and sequences the balance, position and
	// transaction-log writes. Failed validation mutates nothing.
	Execute(ctx context.Context, userID, coinID string, side domain.TradeSide, amount string) error
}

// CoinLookup resolves a coin from the cached market snapshot.
type CoinLookup interface {
	Coin(id string) (domain.Coin, bool)
}

// BalanceNotifier receives the post-trade balance; the websocket hub
// implements it to push updates to the owning user's clients.
type BalanceNotifier interface {
	NotifyBalance(userID string, balance decimal.Decimal)
}
