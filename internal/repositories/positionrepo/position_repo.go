package positionrepo

import (
	"context"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
)

type IPositionRepository interface {
	// Get returns the user's holding of one coin; found is false when
	// the position row is absent.
	Get(ctx context.Context, userID, coinID string) (*domain.Position, bool, error)

	// GetRev returns the position with its revision token. The token
	// is valid even for an absent row so first buys can be written
	// conditionally too.
	GetRev(ctx context.Context, userID, coinID string) (*domain.Position, string, bool, error)

	// List returns every position the user holds.
	List(ctx context.Context, userID string) ([]*domain.Position, error)

	// SetRev writes the position conditionally on the revision.
	SetRev(ctx context.Context, userID string, position *domain.Position, rev string) error

	// DeleteRev removes the position row conditionally on the revision.
	// Exhausted positions are removed, never stored as zero rows.
	DeleteRev(ctx context.Context, userID, coinID, rev string) error
}
