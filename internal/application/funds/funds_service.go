package funds

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/KandruPoojitha/CryptoApp/internal/infrastructure/payments"
)

type IFundsService interface {
	// CreateCustomer provisions a payment-gateway customer record and
	// returns its id; this backs the create-customer endpoint.
	CreateCustomer(ctx context.Context, email, name string) (string, error)

	// EnsureCustomer returns the user's stored gateway customer id,
	// creating and persisting one from the profile on first use.
	EnsureCustomer(ctx context.Context, userID string) (string, error)

	// AddFunds charges the selected card with an immediately confirmed
	// payment intent and credits the wallet only when the charge
	// succeeded.
	AddFunds(ctx context.Context, userID, amount, paymentMethodID string) error

	// AddCard attaches an already tokenized payment method to the
	// user's customer record.
	AddCard(ctx context.Context, userID, paymentMethodID string) (*payments.PaymentMethod, error)

	// ListCards returns the user's saved cards.
	ListCards(ctx context.Context, userID string) ([]*payments.PaymentMethod, error)

	// RemoveCard detaches a saved card.
	RemoveCard(ctx context.Context, userID, paymentMethodID string) error

	// FundingHistory returns the gateway's charge list for the user.
	FundingHistory(ctx context.Context, userID string) ([]*payments.Charge, error)
}

// BalanceNotifier receives the post-funding balance for websocket
// delivery.
type BalanceNotifier interface {
	NotifyBalance(userID string, balance decimal.Decimal)
}
