package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/internal/ledger"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/balancerepo"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/positionrepo"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/transactionrepo"
	"github.com/KandruPoojitha/CryptoApp/pkg/keylock"
)

// casAttempts bounds how often the initial read-validate-write is
// retried when another writer touched the balance in between.
const casAttempts = 3

type TradeService struct {
	market       CoinLookup
	balances     balancerepo.IBalanceRepository
	positions    positionrepo.IPositionRepository
	transactions transactionrepo.ITransactionRepository
	locks        *keylock.KeyLock
	notifier     BalanceNotifier
	logger       zerolog.Logger
}

func New(
	market CoinLookup,
	balances balancerepo.IBalanceRepository,
	positions positionrepo.IPositionRepository,
	transactions transactionrepo.ITransactionRepository,
	notifier BalanceNotifier,
	logger zerolog.Logger,
) ITradeService {
	return &TradeService{
		market:       market,
		balances:     balances,
		positions:    positions,
		transactions: transactions,
		locks:        keylock.New(),
		notifier:     notifier,
		logger:       logger,
	}
}

func (s *TradeService) Execute(ctx context.Context, userID, coinID string, side domain.TradeSide, amount string) error {
	if !side.Valid() {
		return errors.Errorf("invalid trade side %q", side)
	}

	requested, err := decimal.NewFromString(amount)
	if err != nil || requested.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	coin, ok := s.market.Coin(coinID)
	if !ok {
		return domain.ErrUnknownCoin
	}
	if coin.CurrentPrice.LessThanOrEqual(decimal.Zero) {
		return errors.Wrapf(domain.ErrUnknownCoin, "no usable price for %s", coinID)
	}

	quantity := requested.Div(coin.CurrentPrice)

	// Trades for one user never interleave in this process; the
	// conditional writes below catch writers elsewhere.
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	// The record id is fixed before any write so a repeated append
	// after a partial failure lands on the same key.
	record := &domain.TransactionRecord{
		ID:         uuid.New().String(),
		CoinName:   coin.Name,
		CoinSymbol: coin.Symbol,
		Quantity:   quantity,
		Amount:     requested,
		Kind:       side,
	}

	for attempt := 0; attempt < casAttempts; attempt++ {
		conflicted, err := s.attempt(ctx, userID, coin, side, requested, quantity, record)
		if err != nil {
			return err
		}
		if !conflicted {
			return nil
		}
		s.logger.Warn().
			Str("user_id", userID).
			Str("coin_id", coinID).
			Int("attempt", attempt+1).
			Msg("Trade hit a concurrent balance write, re-reading")
	}

	return domain.ErrConflict
}

// attempt runs one read-validate-write pass. A conflict on the first
// write (the balance) reports conflicted=true so the caller re-reads
// and revalidates; conflicts after the balance has moved are surfaced
// as errors instead of retried, because re-running the pass would apply
// the balance delta twice.
func (s *TradeService) attempt(
	ctx context.Context,
	userID string,
	coin domain.Coin,
	side domain.TradeSide,
	requested, quantity decimal.Decimal,
	record *domain.TransactionRecord,
) (bool, error) {
	balance, balanceRev, err := s.balances.GetRev(ctx, userID)
	if err != nil {
		return false, err
	}

	position, positionRev, held, err := s.positions.GetRev(ctx, userID, coin.ID)
	if err != nil {
		return false, err
	}

	switch side {
	case domain.SideBuy:
		if balance.LessThan(requested) {
			return false, domain.ErrInsufficientFunds
		}
	case domain.SideSell:
		heldQuantity := decimal.Zero
		if held {
			heldQuantity = position.Quantity
		}
		if quantity.GreaterThan(heldQuantity) {
			return false, domain.ErrInsufficientHoldings
		}
	}

	newBalance := balance.Sub(requested)
	if side == domain.SideSell {
		newBalance = balance.Add(requested)
	}

	if err := s.balances.SetRev(ctx, userID, newBalance, balanceRev); err != nil {
		if errors.Is(err, ledger.ErrConflict) {
			return true, nil
		}
		return false, err
	}

	if err := s.writePosition(ctx, userID, coin, side, requested, quantity, position, positionRev, held); err != nil {
		return false, err
	}

	if err := s.transactions.Append(ctx, userID, record); err != nil {
		return false, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("coin_id", coin.ID).
		Str("side", string(side)).
		Str("amount", requested.String()).
		Str("quantity", quantity.String()).
		Msg("Trade executed")

	if s.notifier != nil {
		s.notifier.NotifyBalance(userID, newBalance)
	}
	return false, nil
}

func (s *TradeService) writePosition(
	ctx context.Context,
	userID string,
	coin domain.Coin,
	side domain.TradeSide,
	requested, quantity decimal.Decimal,
	position *domain.Position,
	positionRev string,
	held bool,
) error {
	currentQuantity := decimal.Zero
	investedAmount := decimal.Zero
	if held {
		currentQuantity = position.Quantity
		investedAmount = position.InvestedAmount
	}

	if side == domain.SideBuy {
		currentQuantity = currentQuantity.Add(quantity)
		investedAmount = investedAmount.Add(requested)
	} else {
		currentQuantity = currentQuantity.Sub(quantity)
		investedAmount = investedAmount.Sub(requested)

		// Selling everything removes the row; a zero position is
		// never stored.
		if currentQuantity.LessThanOrEqual(decimal.Zero) {
			if err := s.positions.DeleteRev(ctx, userID, coin.ID, positionRev); err != nil {
				if errors.Is(err, ledger.ErrConflict) {
					return errors.Wrap(domain.ErrConflict, "position changed after balance write")
				}
				return err
			}
			return nil
		}
	}

	updated := &domain.Position{
		CoinID:         coin.ID,
		Name:           coin.Name,
		Symbol:         coin.Symbol,
		Image:          coin.Image,
		CurrentPrice:   coin.CurrentPrice,
		Quantity:       currentQuantity,
		InvestedAmount: investedAmount,
	}
	if err := s.positions.SetRev(ctx, userID, updated, positionRev); err != nil {
		if errors.Is(err, ledger.ErrConflict) {
			return errors.Wrap(domain.ErrConflict, "position changed after balance write")
		}
		return err
	}
	return nil
}
