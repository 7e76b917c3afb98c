package userrepo

import (
	"context"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
)

type IUserRepository interface {
	// Get returns the users/{uid} record.
	Get(ctx context.Context, userID string) (*domain.UserProfile, bool, error)

	// UpdateProfile merges name and email without touching balance or
	// the payment customer id.
	UpdateProfile(ctx context.Context, userID, name, email string) error

	// SetStripeCustomerID stores the lazily provisioned gateway
	// customer id.
	SetStripeCustomerID(ctx context.Context, userID, customerID string) error
}
