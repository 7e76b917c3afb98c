package portfolio

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/positionrepo"
)

type IPortfolioService interface {
	// Holdings joins the user's positions with the live market
	// snapshot and totals them.
	Holdings(ctx context.Context, userID string) ([]Holding, Summary, error)
}

// CoinLookup resolves coins from the cached market snapshot.
type CoinLookup interface {
	Coin(id string) (domain.Coin, bool)
}

type PortfolioService struct {
	positions positionrepo.IPositionRepository
	market    CoinLookup
	logger    zerolog.Logger
}

func New(positions positionrepo.IPositionRepository, market CoinLookup, logger zerolog.Logger) IPortfolioService {
	return &PortfolioService{
		positions: positions,
		market:    market,
		logger:    logger,
	}
}

func (s *PortfolioService) Holdings(ctx context.Context, userID string) ([]Holding, Summary, error) {
	positions, err := s.positions.List(ctx, userID)
	if err != nil {
		return nil, Summary{}, err
	}

	holdings := make([]Holding, 0, len(positions))
	for _, position := range positions {
		holding := Holding{Position: position}

		coin, ok := s.market.Coin(position.CoinID)
		if !ok {
			// Coins that dropped off the snapshot stay listed with
			// their ledger data but carry no valuation.
			s.logger.Debug().
				Str("user_id", userID).
				Str("coin_id", position.CoinID).
				Msg("Held coin missing from market snapshot")
			holdings = append(holdings, holding)
			continue
		}

		holding.Coin = &coin
		holding.CurrentValue = CurrentValue(position.Quantity, coin)
		holding.ImpliedInvested = ImpliedInvested(position.Quantity, coin)
		holdings = append(holdings, holding)
	}

	return holdings, Summarize(holdings), nil
}
