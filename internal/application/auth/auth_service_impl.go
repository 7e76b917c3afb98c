package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/pkg/config"
)

type AuthService struct {
	config *config.Config
	logger zerolog.Logger
}

func New(config *config.Config, logger zerolog.Logger) IAuthService {
	return &AuthService{
		config: config,
		logger: logger,
	}
}

func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*domain.Claim, error) {
	jwtSecret := s.config.JWT.Secret
	if jwtSecret == "" {
		s.logger.Error().Msg("JWT secret not configured")
		return nil, &domain.AuthError{Message: "authentication unavailable"}
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claim{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to parse token")
		return nil, &domain.AuthError{Message: "invalid credentials, please sign in again"}
	}

	if !token.Valid {
		return nil, &domain.AuthError{Message: "invalid credentials, please sign in again"}
	}

	claims, ok := token.Claims.(*domain.Claim)
	if !ok {
		return nil, &domain.AuthError{Message: "invalid credentials, please sign in again"}
	}

	if claims.ExpiresAt < time.Now().Unix() {
		return nil, &domain.AuthError{Message: "session expired, please sign in again"}
	}

	if s.config.JWT.Issuer != "" && claims.Issuer != s.config.JWT.Issuer {
		s.logger.Error().Str("issuer", claims.Issuer).Msg("Invalid token issuer")
		return nil, &domain.AuthError{Message: "invalid credentials, please sign in again"}
	}

	if claims.UserID == "" {
		return nil, &domain.AuthError{Message: "invalid credentials, please sign in again"}
	}

	return claims, nil
}
