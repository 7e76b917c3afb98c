package funds

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/internal/infrastructure/payments"
	"github.com/KandruPoojitha/CryptoApp/internal/ledger"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/balancerepo"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/userrepo"
)

type fakeGateway struct {
	intentStatus    string
	createdIntents  []int64
	customers       int
	attached        []string
	detached        []string
	methods         []*payments.PaymentMethod
	charges         []*payments.Charge
	lastCustomerID  string
	lastPaymentMeth string
}

func (g *fakeGateway) CreateCustomer(ctx context.Context, email, name string) (*payments.Customer, error) {
	g.customers++
	return &payments.Customer{ID: "cus_test", Email: email, Name: name}, nil
}

func (g *fakeGateway) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) (*payments.PaymentMethod, error) {
	g.attached = append(g.attached, paymentMethodID)
	return &payments.PaymentMethod{ID: paymentMethodID, Type: "card"}, nil
}

func (g *fakeGateway) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	g.detached = append(g.detached, paymentMethodID)
	return nil
}

func (g *fakeGateway) ListPaymentMethods(ctx context.Context, customerID string) ([]*payments.PaymentMethod, error) {
	return g.methods, nil
}

func (g *fakeGateway) CreatePaymentIntent(ctx context.Context, amountCents int64, currency, customerID, paymentMethodID string) (*payments.PaymentIntent, error) {
	g.createdIntents = append(g.createdIntents, amountCents)
	g.lastCustomerID = customerID
	g.lastPaymentMeth = paymentMethodID
	status := g.intentStatus
	if status == "" {
		status = "succeeded"
	}
	return &payments.PaymentIntent{ID: "pi_test", Status: status, Amount: amountCents, Currency: currency}, nil
}

func (g *fakeGateway) ListCharges(ctx context.Context, customerID string) ([]*payments.Charge, error) {
	return g.charges, nil
}

type recordingNotifier struct {
	balances []decimal.Decimal
}

func (n *recordingNotifier) NotifyBalance(userID string, balance decimal.Decimal) {
	n.balances = append(n.balances, balance)
}

type fixture struct {
	store    *ledger.MemoryStore
	gateway  *fakeGateway
	users    userrepo.IUserRepository
	balances balancerepo.IBalanceRepository
	notifier *recordingNotifier
	service  IFundsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := ledger.NewMemoryStore()
	gateway := &fakeGateway{}
	users := userrepo.New(store)
	balances := balancerepo.New(store)
	notifier := &recordingNotifier{}

	require.NoError(t, users.UpdateProfile(context.Background(), "u1", "Poojitha", "p@example.com"))

	return &fixture{
		store:    store,
		gateway:  gateway,
		users:    users,
		balances: balances,
		notifier: notifier,
		service:  New(gateway, users, balances, notifier, zerolog.Nop()),
	}
}

func TestAddFunds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.service.AddFunds(ctx, "u1", "25.50", "pm_card"))

	balance, err := f.balances.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("25.5")), "balance = %s", balance)

	// the gateway bills in cents
	require.Len(t, f.gateway.createdIntents, 1)
	assert.Equal(t, int64(2550), f.gateway.createdIntents[0])
	assert.Equal(t, "cus_test", f.gateway.lastCustomerID)
	assert.Equal(t, "pm_card", f.gateway.lastPaymentMeth)

	require.Len(t, f.notifier.balances, 1)
	assert.True(t, f.notifier.balances[0].Equal(decimal.RequireFromString("25.5")))
}

func TestAddFundsFailedIntentCreditsNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.gateway.intentStatus = "requires_action"

	err := f.service.AddFunds(ctx, "u1", "25", "pm_card")
	require.Error(t, err)

	var gatewayErr *domain.GatewayError
	assert.ErrorAs(t, err, &gatewayErr)

	balance, err := f.balances.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
	assert.Empty(t, f.notifier.balances)
}

func TestAddFundsValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.ErrorIs(t, f.service.AddFunds(ctx, "u1", "0", "pm_card"), domain.ErrInvalidAmount)
	assert.ErrorIs(t, f.service.AddFunds(ctx, "u1", "-10", "pm_card"), domain.ErrInvalidAmount)
	assert.ErrorIs(t, f.service.AddFunds(ctx, "u1", "ten dollars", "pm_card"), domain.ErrInvalidAmount)
	assert.Error(t, f.service.AddFunds(ctx, "u1", "10", ""))

	assert.Empty(t, f.gateway.createdIntents)
}

func TestEnsureCustomerProvisionsOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	customerID, err := f.service.EnsureCustomer(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "cus_test", customerID)

	// the id is persisted, the second call reads it back
	customerID, err = f.service.EnsureCustomer(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "cus_test", customerID)
	assert.Equal(t, 1, f.gateway.customers)

	profile, found, err := f.users.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "cus_test", profile.StripeCustomerID)
}

func TestEnsureCustomerUnknownUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.service.EnsureCustomer(ctx, "nobody")
	assert.Error(t, err)
	assert.Equal(t, 0, f.gateway.customers)
}

func TestCardLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.gateway.methods = []*payments.PaymentMethod{
		{ID: "pm_1", Type: "card", Card: &payments.Card{Brand: "visa", Last4: "4242"}},
	}

	method, err := f.service.AddCard(ctx, "u1", "pm_1")
	require.NoError(t, err)
	assert.Equal(t, "pm_1", method.ID)

	cards, err := f.service.ListCards(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "4242", cards[0].Card.Last4)

	require.NoError(t, f.service.RemoveCard(ctx, "u1", "pm_1"))
	assert.Equal(t, []string{"pm_1"}, f.gateway.detached)
}

func TestFundingHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.gateway.charges = []*payments.Charge{
		{ID: "ch_1", Amount: 2500, Currency: "usd", Status: "succeeded"},
	}

	charges, err := f.service.FundingHistory(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, charges, 1)
	assert.Equal(t, "ch_1", charges[0].ID)
}
