package balancerepo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/internal/ledger"
)

type BalanceRepository struct {
	store ledger.Store
}

func New(store ledger.Store) IBalanceRepository {
	return &BalanceRepository{store: store}
}

func (r *BalanceRepository) Get(ctx context.Context, userID string) (decimal.Decimal, error) {
	var amount decimal.Decimal
	found, err := r.store.Get(ctx, path(userID), &amount)
	if err != nil {
		return decimal.Zero, &domain.StoreError{Op: "get", Path: path(userID), Err: err}
	}
	if !found {
		return decimal.Zero, nil
	}
	return amount, nil
}

func (r *BalanceRepository) GetRev(ctx context.Context, userID string) (decimal.Decimal, string, error) {
	var amount decimal.Decimal
	rev, found, err := r.store.GetRev(ctx, path(userID), &amount)
	if err != nil {
		return decimal.Zero, "", &domain.StoreError{Op: "get", Path: path(userID), Err: err}
	}
	if !found {
		return decimal.Zero, rev, nil
	}
	return amount, rev, nil
}

func (r *BalanceRepository) SetRev(ctx context.Context, userID string, amount decimal.Decimal, rev string) error {
	if err := r.store.SetRev(ctx, path(userID), amount, rev); err != nil {
		if err == ledger.ErrConflict {
			return err
		}
		return &domain.StoreError{Op: "set", Path: path(userID), Err: err}
	}
	return nil
}

func path(userID string) string {
	return "users/" + userID + "/balance"
}
