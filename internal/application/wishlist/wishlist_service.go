package wishlist

import (
	"context"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
)

type IWishlistService interface {
	// Toggle flips the coin's membership in the user's wishlist and
	// reports the resulting state.
	Toggle(ctx context.Context, userID, coinID string) (bool, error)

	// List returns the wishlisted coins joined with the market
	// snapshot; ids without a live listing are skipped.
	List(ctx context.Context, userID string) ([]domain.Coin, error)

	// Contains reports whether the coin is wishlisted.
	Contains(ctx context.Context, userID, coinID string) (bool, error)
}
