// Package ledger fronts the key-path JSON store holding balances,
// positions, wishlists and transaction records.
package ledger

import (
	"context"
	"errors"
)

// ErrConflict reports a conditional write whose expected revision was
// stale.
var ErrConflict = errors.New("ledger: revision mismatch")

// Store is a key-path-addressable JSON document store. Paths are
// slash-separated ("users/uid/balance"). Revisions returned by GetRev
// guard conditional writes: a SetRev/DeleteRev whose revision no longer
// matches fails with ErrConflict instead of silently losing an update.
type Store interface {
	// Get reads the value at path into out. found is false when the
	// path holds nothing; out is left untouched in that case.
	Get(ctx context.Context, path string, out interface{}) (found bool, err error)

	// GetRev reads like Get and additionally returns the revision
	// token of the path, valid even for an absent value.
	GetRev(ctx context.Context, path string, out interface{}) (rev string, found bool, err error)

	// Set writes value at path unconditionally, replacing any subtree.
	Set(ctx context.Context, path string, value interface{}) error

	// SetRev writes value at path only if the path's revision still
	// matches rev.
	SetRev(ctx context.Context, path string, value interface{}, rev string) error

	// Update merges fields into the object at path, leaving other
	// children untouched.
	Update(ctx context.Context, path string, fields map[string]interface{}) error

	// Delete removes the subtree at path.
	Delete(ctx context.Context, path string) error

	// DeleteRev removes the subtree at path only if the revision still
	// matches rev.
	DeleteRev(ctx context.Context, path string, rev string) error
}
