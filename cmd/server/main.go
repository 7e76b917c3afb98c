package main

import (
	"context"

	"github.com/KandruPoojitha/CryptoApp/internal/application/account"
	authservice "github.com/KandruPoojitha/CryptoApp/internal/application/auth"
	"github.com/KandruPoojitha/CryptoApp/internal/application/funds"
	"github.com/KandruPoojitha/CryptoApp/internal/application/portfolio"
	"github.com/KandruPoojitha/CryptoApp/internal/application/trade"
	"github.com/KandruPoojitha/CryptoApp/internal/application/wishlist"
	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/internal/infrastructure/payments"
	"github.com/KandruPoojitha/CryptoApp/internal/infrastructure/pricesource"
	"github.com/KandruPoojitha/CryptoApp/internal/ledger"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/balancerepo"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/positionrepo"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/transactionrepo"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/userrepo"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/wishlistrepo"
	"github.com/KandruPoojitha/CryptoApp/internal/server"
	"github.com/KandruPoojitha/CryptoApp/internal/server/handlers"
	"github.com/KandruPoojitha/CryptoApp/internal/server/middleware"
	wshub "github.com/KandruPoojitha/CryptoApp/internal/server/websocket"
	"github.com/KandruPoojitha/CryptoApp/pkg/config"
	"github.com/KandruPoojitha/CryptoApp/pkg/logger"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log = logger.NewWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		TimeFormat: cfg.Logger.TimeFormat,
		Pretty:     cfg.Logger.Pretty,
	})

	store := ledger.NewFirebaseStore(cfg.Ledger, log)

	balances := balancerepo.New(store)
	positions := positionrepo.New(store)
	transactions := transactionrepo.New(store)
	wishlists := wishlistrepo.New(store)
	users := userrepo.New(store)

	hub := wshub.NewHub(cfg.WebSocket.PingPeriod, log)
	go hub.Run()

	market := pricesource.NewSnapshot(
		pricesource.NewClient(cfg.PriceSource, log),
		cfg.PriceSource.RefreshInterval,
		log,
	)
	market.OnRefresh(func(coins []domain.Coin) {
		hub.NotifyMarket(coins)
	})
	go market.Run(context.Background())

	gateway := payments.NewStripeClient(cfg.Stripe, log)

	tradeSvc := trade.New(market, balances, positions, transactions, hub, log)
	portfolioSvc := portfolio.New(positions, market, log)
	wishlistSvc := wishlist.New(wishlists, market, log)
	fundsSvc := funds.New(gateway, users, balances, hub, log)
	accountSvc := account.New(users, balances, log)
	authSvc := authservice.New(cfg, log)

	mw := middleware.NewMiddleware(authSvc, log)
	h := handlers.New(
		tradeSvc,
		portfolioSvc,
		wishlistSvc,
		fundsSvc,
		accountSvc,
		transactions,
		market,
		hub,
		log,
		cfg,
	)

	srv := server.New(cfg, h, mw, log)
	srv.Start()
}
