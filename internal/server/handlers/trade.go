package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KandruPoojitha/CryptoApp/internal/application/trade"
	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/internal/repositories/transactionrepo"
)

type TradeHandler struct {
	tradeService trade.ITradeService
	transactions transactionrepo.ITransactionRepository
}

func NewTradeHandler(tradeService trade.ITradeService, transactions transactionrepo.ITransactionRepository) *TradeHandler {
	return &TradeHandler{
		tradeService: tradeService,
		transactions: transactions,
	}
}

type tradeRequest struct {
	CoinID string `json:"coin_id" binding:"required"`
	Side   string `json:"side" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

func (h *TradeHandler) ExecuteTrade(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": err.Error(),
		})
		return
	}

	side := domain.TradeSide(req.Side)
	if !side.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "side must be \"buy\" or \"sell\"",
		})
		return
	}

	if err := h.tradeService.Execute(c.Request.Context(), userID(c), req.CoinID, side, req.Amount); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

func (h *TradeHandler) ListTransactions(c *gin.Context) {
	records, err := h.transactions.List(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	type transactionResponse struct {
		ID string `json:"id"`
		*domain.TransactionRecord
	}
	out := make([]transactionResponse, 0, len(records))
	for _, record := range records {
		out = append(out, transactionResponse{ID: record.ID, TransactionRecord: record})
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": out,
		"total":        len(out),
	})
}
