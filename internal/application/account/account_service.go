package account

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/balancerepo"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/userrepo"
)

type IAccountService interface {
	// Profile returns the user's stored profile and wallet balance.
	Profile(ctx context.Context, userID string) (*domain.UserProfile, error)

	// UpdateProfile merges name and email into the profile record.
	UpdateProfile(ctx context.Context, userID, name, email string) error

	// Balance returns the cash balance, zero for new wallets.
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
}

type AccountService struct {
	users    userrepo.IUserRepository
	balances balancerepo.IBalanceRepository
	logger   zerolog.Logger
}

func New(users userrepo.IUserRepository, balances balancerepo.IBalanceRepository, logger zerolog.Logger) IAccountService {
	return &AccountService{users: users, balances: balances, logger: logger}
}

func (s *AccountService) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	return s.balances.Get(ctx, userID)
}

func (s *AccountService) Profile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, found, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Errorf("no profile stored for user %s", userID)
	}
	return profile, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID, name, email string) error {
	if name == "" || email == "" {
		return errors.New("name and email are required")
	}
	if err := s.users.UpdateProfile(ctx, userID, name, email); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("Profile updated")
	return nil
}
