package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount rejects trade or funding amounts that do not
	// parse as a positive decimal.
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrInsufficientFunds rejects a buy larger than the cash balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientHoldings rejects a sell larger than the held quantity.
	ErrInsufficientHoldings = errors.New("insufficient holdings")

	// ErrUnknownCoin rejects operations on coins absent from the
	// current market snapshot.
	ErrUnknownCoin = errors.New("unknown coin")

	// ErrConflict surfaces a revision mismatch that persisted through
	// the bounded retries of a conditional write.
	ErrConflict = errors.New("record modified concurrently, retry")
)

// StoreError wraps a ledger transport or serialization failure.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("ledger %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// GatewayError carries the payment provider's own message text, which
// clients display verbatim.
type GatewayError struct {
	Message string
	Code    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway: %s", e.Message)
}

// AuthError maps provider auth failures to a user-facing message.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }
