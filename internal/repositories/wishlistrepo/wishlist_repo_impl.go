package wishlistrepo

import (
	"context"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/internal/ledger"
)

type WishlistRepository struct {
	store ledger.Store
}

func New(store ledger.Store) IWishlistRepository {
	return &WishlistRepository{store: store}
}

func (r *WishlistRepository) GetRev(ctx context.Context, userID string) ([]string, string, error) {
	var coinIDs []string
	rev, found, err := r.store.GetRev(ctx, path(userID), &coinIDs)
	if err != nil {
		return nil, "", &domain.StoreError{Op: "get", Path: path(userID), Err: err}
	}
	if !found {
		return nil, rev, nil
	}
	return coinIDs, rev, nil
}

func (r *WishlistRepository) SetRev(ctx context.Context, userID string, coinIDs []string, rev string) error {
	if len(coinIDs) == 0 {
		// an empty wishlist is removed, matching how the clients
		// stored it
		if err := r.store.DeleteRev(ctx, path(userID), rev); err != nil {
			if err == ledger.ErrConflict {
				return err
			}
			return &domain.StoreError{Op: "delete", Path: path(userID), Err: err}
		}
		return nil
	}

	if err := r.store.SetRev(ctx, path(userID), coinIDs, rev); err != nil {
		if err == ledger.ErrConflict {
			return err
		}
		return &domain.StoreError{Op: "set", Path: path(userID), Err: err}
	}
	return nil
}

func path(userID string) string {
	return "wishlist/" + userID
}
