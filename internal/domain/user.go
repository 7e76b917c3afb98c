package domain

import (
	"github.com/dgrijalva/jwt-go"
	"github.com/shopspring/decimal"
)

// UserProfile is the users/{uid} record. Balance lives under the same
// key so the profile read doubles as the wallet read.
type UserProfile struct {
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Balance          decimal.Decimal `json:"balance"`
	StripeCustomerID string          `json:"stripeCustomerId,omitempty"`
}

// Claim is the token payload the auth provider issues. The service only
// verifies; it never signs user tokens itself.
type Claim struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.StandardClaims
}
