package balancerepo

import (
	"context"

	"github.com/shopspring/decimal"
)

type IBalanceRepository interface {
	// Get returns the user's cash balance, zero when none is stored.
	Get(ctx context.Context, userID string) (decimal.Decimal, error)

	// GetRev returns the balance together with its revision token.
	GetRev(ctx context.Context, userID string) (decimal.Decimal, string, error)

	// SetRev writes the balance conditionally on the revision.
	SetRev(ctx context.Context, userID string, amount decimal.Decimal, rev string) error
}
