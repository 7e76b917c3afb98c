package pricesource

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
)

type fakeSource struct {
	coins []domain.Coin
	err   error
}

func (s *fakeSource) Markets(ctx context.Context) ([]domain.Coin, error) {
	return s.coins, s.err
}

func TestSnapshotRefresh(t *testing.T) {
	source := &fakeSource{coins: []domain.Coin{
		{ID: "bitcoin", CurrentPrice: decimal.RequireFromString("50000")},
		{ID: "ethereum", CurrentPrice: decimal.RequireFromString("3000")},
	}}
	snapshot := NewSnapshot(source, 0, zerolog.Nop())

	assert.True(t, snapshot.RefreshedAt().IsZero())
	require.NoError(t, snapshot.Refresh(context.Background()))
	assert.False(t, snapshot.RefreshedAt().IsZero())

	coins := snapshot.Coins()
	require.Len(t, coins, 2)
	assert.Equal(t, "bitcoin", coins[0].ID)

	coin, ok := snapshot.Coin("ethereum")
	require.True(t, ok)
	assert.True(t, coin.CurrentPrice.Equal(decimal.RequireFromString("3000")))

	_, ok = snapshot.Coin("dogecoin")
	assert.False(t, ok)
}

func TestSnapshotKeepsStaleDataOnFailure(t *testing.T) {
	source := &fakeSource{coins: []domain.Coin{{ID: "bitcoin"}}}
	snapshot := NewSnapshot(source, 0, zerolog.Nop())
	require.NoError(t, snapshot.Refresh(context.Background()))

	source.err = errors.New("rate limited")
	require.Error(t, snapshot.Refresh(context.Background()))

	// the last good listing keeps serving
	assert.Len(t, snapshot.Coins(), 1)
}

func TestSnapshotOnRefresh(t *testing.T) {
	source := &fakeSource{coins: []domain.Coin{{ID: "bitcoin"}}}
	snapshot := NewSnapshot(source, 0, zerolog.Nop())

	var published [][]domain.Coin
	snapshot.OnRefresh(func(coins []domain.Coin) {
		published = append(published, coins)
	})

	require.NoError(t, snapshot.Refresh(context.Background()))
	require.Len(t, published, 1)
	assert.Equal(t, "bitcoin", published[0][0].ID)
}
