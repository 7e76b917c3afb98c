package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KandruPoojitha/CryptoApp/internal/application/portfolio"
)

type PortfolioHandler struct {
	portfolioService portfolio.IPortfolioService
}

func NewPortfolioHandler(portfolioService portfolio.IPortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	holdings, summary, err := h.portfolioService.Holdings(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"holdings": holdings,
		"summary":  summary,
	})
}
