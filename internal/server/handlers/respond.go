package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
)

// respondError maps service failures onto HTTP statuses with the
// human-readable message the clients display inline.
func respondError(c *gin.Context, err error) {
	var gatewayErr *domain.GatewayError
	var storeErr *domain.StoreError
	var authErr *domain.AuthError

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnknownCoin):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": err.Error(),
		})
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientHoldings):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Unprocessable",
			"message": err.Error(),
		})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Conflict",
			"message": err.Error(),
		})
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": authErr.Message,
		})
	case errors.As(err, &gatewayErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Payment Gateway Error",
			"message": gatewayErr.Message,
		})
	case errors.As(err, &storeErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Ledger Error",
			"message": "The wallet store is unavailable, please try again",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": err.Error(),
		})
	}
}

func userID(c *gin.Context) string {
	return c.GetString("user_id")
}
