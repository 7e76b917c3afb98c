package wishlistrepo

import "context"

type IWishlistRepository interface {
	// GetRev reads the user's full wishlist (a set of coin ids) with
	// its revision token.
	GetRev(ctx context.Context, userID string) ([]string, string, error)

	// SetRev writes the whole set back conditionally on the revision.
	SetRev(ctx context.Context, userID string, coinIDs []string, rev string) error
}
