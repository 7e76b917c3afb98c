package domain

import "github.com/shopspring/decimal"

func init() {
	// The ledger and the API both carry amounts as JSON numbers, the
	// same shape the mobile clients already store in the database.
	decimal.MarshalJSONWithoutQuotes = true
}

// Coin is an immutable market snapshot entry from the price source.
type Coin struct {
	ID                       string          `json:"id"`
	Symbol                   string          `json:"symbol"`
	Name                     string          `json:"name"`
	Image                    string          `json:"image"`
	CurrentPrice             decimal.Decimal `json:"current_price"`
	PriceChangePercentage24h decimal.Decimal `json:"price_change_percentage_24h"`
	MarketCapRank            int             `json:"market_cap_rank"`
}
