package auth

import (
	"context"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
)

// IAuthService verifies the bearer tokens the auth provider issues.
// Sign-in and sign-up live with the provider; this service only checks
// signatures and yields the user identity handlers pass explicitly into
// every downstream call.
type IAuthService interface {
	VerifyToken(ctx context.Context, tokenString string) (*domain.Claim, error)
}
