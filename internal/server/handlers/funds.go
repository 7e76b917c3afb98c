package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KandruPoojitha/CryptoApp/internal/application/funds"
)

type FundsHandler struct {
	fundsService funds.IFundsService
}

func NewFundsHandler(fundsService funds.IFundsService) *FundsHandler {
	return &FundsHandler{fundsService: fundsService}
}

type addFundsRequest struct {
	Amount          string `json:"amount" binding:"required"`
	PaymentMethodID string `json:"payment_method_id" binding:"required"`
}

func (h *FundsHandler) AddFunds(c *gin.Context) {
	var req addFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": err.Error(),
		})
		return
	}

	if err := h.fundsService.AddFunds(c.Request.Context(), userID(c), req.Amount, req.PaymentMethodID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

func (h *FundsHandler) FundingHistory(c *gin.Context) {
	charges, err := h.fundsService.FundingHistory(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"charges": charges,
		"total":   len(charges),
	})
}

func (h *FundsHandler) ListCards(c *gin.Context) {
	cards, err := h.fundsService.ListCards(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

type addCardRequest struct {
	PaymentMethodID string `json:"payment_method_id" binding:"required"`
}

func (h *FundsHandler) AddCard(c *gin.Context) {
	var req addCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": err.Error(),
		})
		return
	}

	card, err := h.fundsService.AddCard(c.Request.Context(), userID(c), req.PaymentMethodID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

func (h *FundsHandler) RemoveCard(c *gin.Context) {
	paymentMethodID := c.Param("id")
	if paymentMethodID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Card ID is required",
		})
		return
	}

	if err := h.fundsService.RemoveCard(c.Request.Context(), userID(c), paymentMethodID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
