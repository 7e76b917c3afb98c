package positionrepo

import (
	"context"
	"sort"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/internal/ledger"
)

type PositionRepository struct {
	store ledger.Store
}

func New(store ledger.Store) IPositionRepository {
	return &PositionRepository{store: store}
}

func (r *PositionRepository) Get(ctx context.Context, userID, coinID string) (*domain.Position, bool, error) {
	var position domain.Position
	found, err := r.store.Get(ctx, coinPath(userID, coinID), &position)
	if err != nil {
		return nil, false, &domain.StoreError{Op: "get", Path: coinPath(userID, coinID), Err: err}
	}
	if !found {
		return nil, false, nil
	}
	position.CoinID = coinID
	return &position, true, nil
}

func (r *PositionRepository) GetRev(ctx context.Context, userID, coinID string) (*domain.Position, string, bool, error) {
	var position domain.Position
	rev, found, err := r.store.GetRev(ctx, coinPath(userID, coinID), &position)
	if err != nil {
		return nil, "", false, &domain.StoreError{Op: "get", Path: coinPath(userID, coinID), Err: err}
	}
	if !found {
		return nil, rev, false, nil
	}
	position.CoinID = coinID
	return &position, rev, true, nil
}

func (r *PositionRepository) List(ctx context.Context, userID string) ([]*domain.Position, error) {
	var rows map[string]domain.Position
	found, err := r.store.Get(ctx, userPath(userID), &rows)
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Path: userPath(userID), Err: err}
	}
	if !found {
		return nil, nil
	}

	positions := make([]*domain.Position, 0, len(rows))
	for coinID, row := range rows {
		position := row
		position.CoinID = coinID
		positions = append(positions, &position)
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].CoinID < positions[j].CoinID
	})
	return positions, nil
}

func (r *PositionRepository) SetRev(ctx context.Context, userID string, position *domain.Position, rev string) error {
	if err := r.store.SetRev(ctx, coinPath(userID, position.CoinID), position, rev); err != nil {
		if err == ledger.ErrConflict {
			return err
		}
		return &domain.StoreError{Op: "set", Path: coinPath(userID, position.CoinID), Err: err}
	}
	return nil
}

func (r *PositionRepository) DeleteRev(ctx context.Context, userID, coinID, rev string) error {
	if err := r.store.DeleteRev(ctx, coinPath(userID, coinID), rev); err != nil {
		if err == ledger.ErrConflict {
			return err
		}
		return &domain.StoreError{Op: "delete", Path: coinPath(userID, coinID), Err: err}
	}
	return nil
}

func userPath(userID string) string {
	return "portfolio/" + userID
}

func coinPath(userID, coinID string) string {
	return userPath(userID) + "/" + coinID
}
