package transactionrepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/internal/ledger"
)

type TransactionRepository struct {
	store ledger.Store
	now   func() time.Time
}

func New(store ledger.Store) ITransactionRepository {
	return &TransactionRepository{store: store, now: time.Now}
}

func (r *TransactionRepository) Append(ctx context.Context, userID string, record *domain.TransactionRecord) error {
	if record.ID == "" {
		return fmt.Errorf("transaction record has no id")
	}
	if record.Timestamp == 0 {
		record.Timestamp = r.now().UnixMilli()
	}

	recordPath := path(userID) + "/" + record.ID
	if err := r.store.Set(ctx, recordPath, record); err != nil {
		return &domain.StoreError{Op: "set", Path: recordPath, Err: err}
	}
	return nil
}

func (r *TransactionRepository) List(ctx context.Context, userID string) ([]*domain.TransactionRecord, error) {
	var rows map[string]domain.TransactionRecord
	found, err := r.store.Get(ctx, path(userID), &rows)
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Path: path(userID), Err: err}
	}
	if !found {
		return nil, nil
	}

	records := make([]*domain.TransactionRecord, 0, len(rows))
	for id, row := range rows {
		record := row
		record.ID = id
		records = append(records, &record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
	return records, nil
}

func path(userID string) string {
	return "transactions/" + userID
}
