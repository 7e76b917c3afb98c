package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KandruPoojitha/CryptoApp/internal/infrastructure/pricesource"
)

type MarketHandler struct {
	market *pricesource.Snapshot
}

func NewMarketHandler(market *pricesource.Snapshot) *MarketHandler {
	return &MarketHandler{market: market}
}

func (h *MarketHandler) ListCoins(c *gin.Context) {
	coins := h.market.Coins()
	if len(coins) == 0 && h.market.RefreshedAt().IsZero() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Service Unavailable",
			"message": "Market data has not loaded yet",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coins":        coins,
		"refreshed_at": h.market.RefreshedAt(),
	})
}
