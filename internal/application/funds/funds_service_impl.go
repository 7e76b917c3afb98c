package funds

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/internal/infrastructure/payments"
	"github.com/KandruPoojitha/CryptoApp/internal/ledger"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/balancerepo"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/userrepo"
	"github.com/KandruPoojitha/CryptoApp/pkg/currency"
)

const (
	casAttempts    = 3
	intentCurrency = "usd"
)

type FundsService struct {
	gateway  payments.IPaymentGateway
	users    userrepo.IUserRepository
	balances balancerepo.IBalanceRepository
	notifier BalanceNotifier
	logger   zerolog.Logger
}

func New(
	gateway payments.IPaymentGateway,
	users userrepo.IUserRepository,
	balances balancerepo.IBalanceRepository,
	notifier BalanceNotifier,
	logger zerolog.Logger,
) IFundsService {
	return &FundsService{
		gateway:  gateway,
		users:    users,
		balances: balances,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *FundsService) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	customer, err := s.gateway.CreateCustomer(ctx, email, name)
	if err != nil {
		return "", err
	}
	return customer.ID, nil
}

func (s *FundsService) EnsureCustomer(ctx context.Context, userID string) (string, error) {
	profile, found, err := s.users.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", errors.Errorf("no profile stored for user %s", userID)
	}
	if profile.StripeCustomerID != "" {
		return profile.StripeCustomerID, nil
	}

	customer, err := s.gateway.CreateCustomer(ctx, profile.Email, profile.Name)
	if err != nil {
		return "", err
	}
	if err := s.users.SetStripeCustomerID(ctx, userID, customer.ID); err != nil {
		return "", err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("customer_id", customer.ID).
		Msg("Provisioned payment customer")
	return customer.ID, nil
}

func (s *FundsService) AddFunds(ctx context.Context, userID, amount, paymentMethodID string) error {
	requested, err := decimal.NewFromString(amount)
	if err != nil || requested.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if paymentMethodID == "" {
		return errors.New("payment method is required")
	}

	customerID, err := s.EnsureCustomer(ctx, userID)
	if err != nil {
		return err
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, currency.DollarsToCents(requested), intentCurrency, customerID, paymentMethodID)
	if err != nil {
		return err
	}
	if intent.Status != "succeeded" {
		// nothing is credited for a pending or failed intent
		return &domain.GatewayError{Message: "payment failed, status: " + intent.Status}
	}

	newBalance, err := s.credit(ctx, userID, requested)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("intent_id", intent.ID).
		Str("amount", currency.FormatUSD(requested)).
		Msg("Funds added")

	if s.notifier != nil {
		s.notifier.NotifyBalance(userID, newBalance)
	}
	return nil
}

func (s *FundsService) AddCard(ctx context.Context, userID, paymentMethodID string) (*payments.PaymentMethod, error) {
	customerID, err := s.EnsureCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.gateway.AttachPaymentMethod(ctx, paymentMethodID, customerID)
}

func (s *FundsService) ListCards(ctx context.Context, userID string) ([]*payments.PaymentMethod, error) {
	customerID, err := s.EnsureCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.gateway.ListPaymentMethods(ctx, customerID)
}

func (s *FundsService) RemoveCard(ctx context.Context, userID, paymentMethodID string) error {
	// EnsureCustomer guards against detaching cards for users who
	// never had a customer record.
	if _, err := s.EnsureCustomer(ctx, userID); err != nil {
		return err
	}
	return s.gateway.DetachPaymentMethod(ctx, paymentMethodID)
}

func (s *FundsService) FundingHistory(ctx context.Context, userID string) ([]*payments.Charge, error) {
	customerID, err := s.EnsureCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.gateway.ListCharges(ctx, customerID)
}

func (s *FundsService) credit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		balance, rev, err := s.balances.GetRev(ctx, userID)
		if err != nil {
			return decimal.Zero, err
		}

		newBalance := balance.Add(amount)
		err = s.balances.SetRev(ctx, userID, newBalance, rev)
		if err == nil {
			return newBalance, nil
		}
		if !errors.Is(err, ledger.ErrConflict) {
			return decimal.Zero, err
		}
		s.logger.Warn().
			Str("user_id", userID).
			Int("attempt", attempt+1).
			Msg("Balance credit hit a concurrent write, re-reading")
	}
	return decimal.Zero, domain.ErrConflict
}
