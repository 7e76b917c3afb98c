package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KandruPoojitha/CryptoApp/internal/application/account"
)

type AccountHandler struct {
	accountService account.IAccountService
}

func NewAccountHandler(accountService account.IAccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	profile, err := h.accountService.Profile(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

type updateAccountRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": err.Error(),
		})
		return
	}

	if err := h.accountService.UpdateProfile(c.Request.Context(), userID(c), req.Name, req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *AccountHandler) GetBalance(c *gin.Context) {
	balance, err := h.accountService.Balance(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
