package wishlist

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/internal/ledger"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/wishlistrepo"
)

const casAttempts = 3

// CoinLookup resolves coins from the cached market snapshot.
type CoinLookup interface {
	Coin(id string) (domain.Coin, bool)
}

type WishlistService struct {
	wishlists wishlistrepo.IWishlistRepository
	market    CoinLookup
	logger    zerolog.Logger
}

func New(wishlists wishlistrepo.IWishlistRepository, market CoinLookup, logger zerolog.Logger) IWishlistService {
	return &WishlistService{
		wishlists: wishlists,
		market:    market,
		logger:    logger,
	}
}

// Toggle is a read-modify-write of the whole id set. The write is
// revision-conditional so a toggle from another device cannot be
// silently dropped; a stale revision is re-read a bounded number of
// times.
func (s *WishlistService) Toggle(ctx context.Context, userID, coinID string) (bool, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		coinIDs, rev, err := s.wishlists.GetRev(ctx, userID)
		if err != nil {
			return false, err
		}

		updated := make([]string, 0, len(coinIDs)+1)
		wishlisted := true
		for _, id := range coinIDs {
			if id == coinID {
				wishlisted = false
				continue
			}
			updated = append(updated, id)
		}
		if wishlisted {
			updated = append(updated, coinID)
		}

		err = s.wishlists.SetRev(ctx, userID, updated, rev)
		if err == nil {
			return wishlisted, nil
		}
		if !errors.Is(err, ledger.ErrConflict) {
			return false, err
		}
		s.logger.Warn().
			Str("user_id", userID).
			Str("coin_id", coinID).
			Int("attempt", attempt+1).
			Msg("Wishlist toggle hit a concurrent write, re-reading")
	}

	return false, domain.ErrConflict
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]domain.Coin, error) {
	coinIDs, _, err := s.wishlists.GetRev(ctx, userID)
	if err != nil {
		return nil, err
	}

	coins := make([]domain.Coin, 0, len(coinIDs))
	for _, id := range coinIDs {
		if coin, ok := s.market.Coin(id); ok {
			coins = append(coins, coin)
		}
	}
	return coins, nil
}

func (s *WishlistService) Contains(ctx context.Context, userID, coinID string) (bool, error) {
	coinIDs, _, err := s.wishlists.GetRev(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, id := range coinIDs {
		if id == coinID {
			return true, nil
		}
	}
	return false, nil
}
