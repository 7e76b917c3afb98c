package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/KandruPoojitha/CryptoApp/internal/application/account"
	"github.com/KandruPoojitha/CryptoApp/internal/application/funds"
	"github.com/KandruPoojitha/CryptoApp/internal/application/portfolio"
	"github.com/KandruPoojitha/CryptoApp/internal/application/trade"
	"github.com/KandruPoojitha/CryptoApp/internal/application/wishlist"
	"github.com/KandruPoojitha/CryptoApp/internal/infrastructure/pricesource"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/transactionrepo"
	"github.com/KandruPoojitha/CryptoApp/internal/server/middleware"
	"github.com/KandruPoojitha/CryptoApp/internal/server/websocket"
	"github.com/KandruPoojitha/CryptoApp/pkg/config"
)

type Handlers struct {
	TradeSvc     trade.ITradeService
	PortfolioSvc portfolio.IPortfolioService
	WishlistSvc  wishlist.IWishlistService
	FundsSvc     funds.IFundsService
	AccountSvc   account.IAccountService
	Transactions transactionrepo.ITransactionRepository
	Market       *pricesource.Snapshot
	Hub          *websocket.Hub
	Logger       zerolog.Logger
	Config       *config.Config
}

func New(
	tradeSvc trade.ITradeService,
	portfolioSvc portfolio.IPortfolioService,
	wishlistSvc wishlist.IWishlistService,
	fundsSvc funds.IFundsService,
	accountSvc account.IAccountService,
	transactions transactionrepo.ITransactionRepository,
	market *pricesource.Snapshot,
	hub *websocket.Hub,
	logger zerolog.Logger,
	config *config.Config,
) *Handlers {
	return &Handlers{
		TradeSvc:     tradeSvc,
		PortfolioSvc: portfolioSvc,
		WishlistSvc:  wishlistSvc,
		FundsSvc:     fundsSvc,
		AccountSvc:   accountSvc,
		Transactions: transactions,
		Market:       market,
		Hub:          hub,
		Logger:       logger,
		Config:       config,
	}
}

func (h *Handlers) SetupHandlers(router *gin.Engine, mw *middleware.Middleware) {
	healthHandler := NewHealthHandler()
	customerHandler := NewCustomerHandler(h.FundsSvc)
	wsHandler := NewWebSocketHandler(h.Hub, h.Config.WebSocket)

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// customer provisioning endpoint used before sign-in completes
	router.POST("/create-customer", customerHandler.CreateCustomer)

	router.GET("/ws", mw.AuthMiddleware(), wsHandler.HandleConnection)

	v1 := router.Group("/v1", mw.AuthMiddleware())
	{
		marketHandler := NewMarketHandler(h.Market)
		v1.GET("/market/coins", marketHandler.ListCoins)

		tradeHandler := NewTradeHandler(h.TradeSvc, h.Transactions)
		v1.POST("/trades", tradeHandler.ExecuteTrade)
		v1.GET("/transactions", tradeHandler.ListTransactions)

		portfolioHandler := NewPortfolioHandler(h.PortfolioSvc)
		v1.GET("/portfolio", portfolioHandler.GetPortfolio)

		wishlistHandler := NewWishlistHandler(h.WishlistSvc)
		v1.GET("/wishlist", wishlistHandler.ListWishlist)
		v1.POST("/wishlist/:coin_id/toggle", wishlistHandler.ToggleWishlist)

		accountHandler := NewAccountHandler(h.AccountSvc)
		v1.GET("/account", accountHandler.GetAccount)
		v1.PUT("/account", accountHandler.UpdateAccount)
		v1.GET("/balance", accountHandler.GetBalance)

		fundsHandler := NewFundsHandler(h.FundsSvc)
		v1.POST("/funds", fundsHandler.AddFunds)
		v1.GET("/funds/history", fundsHandler.FundingHistory)
		v1.GET("/cards", fundsHandler.ListCards)
		v1.POST("/cards", fundsHandler.AddCard)
		v1.DELETE("/cards/:id", fundsHandler.RemoveCard)
	}
}
