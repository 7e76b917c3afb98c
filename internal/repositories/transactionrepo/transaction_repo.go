package transactionrepo

import (
	"context"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
)

type ITransactionRepository interface {
	// Append writes one immutable trade record. The record's ID must
	// be set by the caller before any other trade write so a repeated
	// append lands on the same key instead of double-logging.
	Append(ctx context.Context, userID string, record *domain.TransactionRecord) error

	// List returns the user's trade records, newest first.
	List(ctx context.Context, userID string) ([]*domain.TransactionRecord, error)
}
