package trade

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/internal/ledger"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/balancerepo"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/positionrepo"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/transactionrepo"
)

type fakeMarket struct {
	coins map[string]domain.Coin
}

func (m *fakeMarket) Coin(id string) (domain.Coin, bool) {
	coin, ok := m.coins[id]
	return coin, ok
}

type recordingNotifier struct {
	userIDs  []string
	balances []decimal.Decimal
}

func (n *recordingNotifier) NotifyBalance(userID string, balance decimal.Decimal) {
	n.userIDs = append(n.userIDs, userID)
	n.balances = append(n.balances, balance)
}

type fixture struct {
	store        *ledger.MemoryStore
	balances     balancerepo.IBalanceRepository
	positions    positionrepo.IPositionRepository
	transactions transactionrepo.ITransactionRepository
	notifier     *recordingNotifier
	service      ITradeService
}

func newFixture(t *testing.T, coins ...domain.Coin) *fixture {
	t.Helper()

	market := &fakeMarket{coins: make(map[string]domain.Coin)}
	for _, coin := range coins {
		market.coins[coin.ID] = coin
	}

	store := ledger.NewMemoryStore()
	balances := balancerepo.New(store)
	positions := positionrepo.New(store)
	transactions := transactionrepo.New(store)
	notifier := &recordingNotifier{}

	return &fixture{
		store:        store,
		balances:     balances,
		positions:    positions,
		transactions: transactions,
		notifier:     notifier,
		service:      New(market, balances, positions, transactions, notifier, zerolog.Nop()),
	}
}

func bitcoin(price string) domain.Coin {
	return domain.Coin{
		ID:           "bitcoin",
		Symbol:       "btc",
		Name:         "Bitcoin",
		CurrentPrice: decimal.RequireFromString(price),
	}
}

func (f *fixture) setBalance(t *testing.T, userID, amount string) {
	t.Helper()
	require.NoError(t, f.store.Set(context.Background(), "users/"+userID+"/balance", decimal.RequireFromString(amount)))
}

func TestExecuteBuy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bitcoin("50000"))
	f.setBalance(t, "u1", "100")

	err := f.service.Execute(ctx, "u1", "bitcoin", domain.SideBuy, "50")
	require.NoError(t, err)

	balance, err := f.balances.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("50")), "balance = %s", balance)

	position, held, err := f.positions.Get(ctx, "u1", "bitcoin")
	require.NoError(t, err)
	require.True(t, held)
	assert.True(t, position.Quantity.Equal(decimal.RequireFromString("0.001")), "quantity = %s", position.Quantity)
	assert.True(t, position.InvestedAmount.Equal(decimal.RequireFromString("50")))
	assert.Equal(t, "Bitcoin", position.Name)
	assert.Equal(t, "btc", position.Symbol)

	records, err := f.transactions.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.SideBuy, records[0].Kind)
	assert.Equal(t, "Bitcoin", records[0].CoinName)
	assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("50")))
	assert.True(t, records[0].Quantity.Equal(decimal.RequireFromString("0.001")))
	assert.NotZero(t, records[0].Timestamp)

	require.Len(t, f.notifier.balances, 1)
	assert.Equal(t, "u1", f.notifier.userIDs[0])
	assert.True(t, f.notifier.balances[0].Equal(decimal.RequireFromString("50")))
}

func TestExecuteBuyAccumulatesPosition(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bitcoin("50000"))
	f.setBalance(t, "u1", "100")

	require.NoError(t, f.service.Execute(ctx, "u1", "bitcoin", domain.SideBuy, "50"))
	require.NoError(t, f.service.Execute(ctx, "u1", "bitcoin", domain.SideBuy, "25"))

	position, held, err := f.positions.Get(ctx, "u1", "bitcoin")
	require.NoError(t, err)
	require.True(t, held)
	assert.True(t, position.Quantity.Equal(decimal.RequireFromString("0.0015")), "quantity = %s", position.Quantity)
	assert.True(t, position.InvestedAmount.Equal(decimal.RequireFromString("75")))

	balance, err := f.balances.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("25")))
}

func TestExecuteSellRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bitcoin("50000"))
	f.setBalance(t, "u1", "100")

	require.NoError(t, f.service.Execute(ctx, "u1", "bitcoin", domain.SideBuy, "100"))
	require.NoError(t, f.service.Execute(ctx, "u1", "bitcoin", domain.SideSell, "100"))

	balance, err := f.balances.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("100")), "balance = %s", balance)

	// selling everything removes the row
	_, held, err := f.positions.Get(ctx, "u1", "bitcoin")
	require.NoError(t, err)
	assert.False(t, held)

	records, err := f.transactions.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestExecuteSellPartial(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bitcoin("50000"))
	f.setBalance(t, "u1", "100")

	require.NoError(t, f.service.Execute(ctx, "u1", "bitcoin", domain.SideBuy, "100"))
	require.NoError(t, f.service.Execute(ctx, "u1", "bitcoin", domain.SideSell, "40"))

	position, held, err := f.positions.Get(ctx, "u1", "bitcoin")
	require.NoError(t, err)
	require.True(t, held)
	assert.True(t, position.Quantity.Equal(decimal.RequireFromString("0.0012")), "quantity = %s", position.Quantity)
	assert.True(t, position.InvestedAmount.Equal(decimal.RequireFromString("60")))

	balance, err := f.balances.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("40")))
}

func TestExecuteInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bitcoin("50000"))
	f.setBalance(t, "u1", "10")

	err := f.service.Execute(ctx, "u1", "bitcoin", domain.SideBuy, "50")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// nothing moved
	balance, err := f.balances.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("10")))

	_, held, err := f.positions.Get(ctx, "u1", "bitcoin")
	require.NoError(t, err)
	assert.False(t, held)

	records, err := f.transactions.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, f.notifier.balances)
}

func TestExecuteInsufficientHoldings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bitcoin("50000"))
	f.setBalance(t, "u1", "100")

	require.NoError(t, f.service.Execute(ctx, "u1", "bitcoin", domain.SideBuy, "50"))

	err := f.service.Execute(ctx, "u1", "bitcoin", domain.SideSell, "60")
	assert.ErrorIs(t, err, domain.ErrInsufficientHoldings)

	balance, err := f.balances.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("50")))
}

func TestExecuteSellWithoutPosition(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bitcoin("50000"))
	f.setBalance(t, "u1", "100")

	err := f.service.Execute(ctx, "u1", "bitcoin", domain.SideSell, "10")
	assert.ErrorIs(t, err, domain.ErrInsufficientHoldings)
}

func TestExecuteValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bitcoin("50000"))
	f.setBalance(t, "u1", "100")

	tests := []struct {
		name    string
		coinID  string
		side    domain.TradeSide
		amount  string
		wantErr error
	}{
		{name: "zero amount", coinID: "bitcoin", side: domain.SideBuy, amount: "0", wantErr: domain.ErrInvalidAmount},
		{name: "negative amount", coinID: "bitcoin", side: domain.SideBuy, amount: "-5", wantErr: domain.ErrInvalidAmount},
		{name: "garbage amount", coinID: "bitcoin", side: domain.SideBuy, amount: "abc", wantErr: domain.ErrInvalidAmount},
		{name: "unknown coin", coinID: "dogecoin", side: domain.SideBuy, amount: "10", wantErr: domain.ErrUnknownCoin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.service.Execute(ctx, "u1", tt.coinID, tt.side, tt.amount)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	err := f.service.Execute(ctx, "u1", "bitcoin", domain.TradeSide("hold"), "10")
	assert.Error(t, err)
}

func TestExecuteRejectsUnpricedCoin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.Coin{ID: "newcoin", Name: "NewCoin", CurrentPrice: decimal.Zero})
	f.setBalance(t, "u1", "100")

	err := f.service.Execute(ctx, "u1", "newcoin", domain.SideBuy, "10")
	assert.ErrorIs(t, err, domain.ErrUnknownCoin)
}

func TestExecuteBuyFromEmptyWallet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bitcoin("50000"))

	// no balance stored at all reads as zero
	err := f.service.Execute(ctx, "u1", "bitcoin", domain.SideBuy, "1")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}
