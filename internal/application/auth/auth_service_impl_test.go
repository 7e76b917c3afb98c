package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/pkg/config"
)

const testSecret = "test-secret"

func newService(secret, issuer string) IAuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.Issuer = issuer
	return New(cfg, zerolog.Nop())
}

func signToken(t *testing.T, secret string, claims *domain.Claim) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyToken(t *testing.T) {
	service := newService(testSecret, "cryptoapp")

	signed := signToken(t, testSecret, &domain.Claim{
		UserID: "u1",
		Email:  "p@example.com",
		StandardClaims: jwt.StandardClaims{
			Issuer:    "cryptoapp",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	})

	claims, err := service.VerifyToken(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "p@example.com", claims.Email)
}

func TestVerifyTokenFailures(t *testing.T) {
	service := newService(testSecret, "cryptoapp")

	valid := jwt.StandardClaims{
		Issuer:    "cryptoapp",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{
			name: "wrong secret",
			token: signToken(t, "other-secret", &domain.Claim{
				UserID:         "u1",
				StandardClaims: valid,
			}),
		},
		{
			name: "expired",
			token: signToken(t, testSecret, &domain.Claim{
				UserID: "u1",
				StandardClaims: jwt.StandardClaims{
					Issuer:    "cryptoapp",
					ExpiresAt: time.Now().Add(-time.Hour).Unix(),
				},
			}),
		},
		{
			name: "wrong issuer",
			token: signToken(t, testSecret, &domain.Claim{
				UserID: "u1",
				StandardClaims: jwt.StandardClaims{
					Issuer:    "someone-else",
					ExpiresAt: time.Now().Add(time.Hour).Unix(),
				},
			}),
		},
		{
			name: "missing user id",
			token: signToken(t, testSecret, &domain.Claim{
				StandardClaims: valid,
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(context.Background(), tt.token)
			require.Error(t, err)

			var authErr *domain.AuthError
			assert.ErrorAs(t, err, &authErr)
		})
	}
}

func TestVerifyTokenWithoutSecret(t *testing.T) {
	service := newService("", "")

	_, err := service.VerifyToken(context.Background(), "anything")
	var authErr *domain.AuthError
	assert.ErrorAs(t, err, &authErr)
}
