package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DollarsToCents converts a decimal dollar amount to whole cents, the
// unit the payment gateway bills in. Rounds half away from zero.
func DollarsToCents(dollars decimal.Decimal) int64 {
	return dollars.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CentsToDollars converts gateway cents back to a dollar amount.
func CentsToDollars(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatUSD renders a dollar amount for messages and logs.
func FormatUSD(dollars decimal.Decimal) string {
	return fmt.Sprintf("$%s", dollars.StringFixed(2))
}
