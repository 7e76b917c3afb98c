package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KandruPoojitha/CryptoApp/internal/application/funds"
)

// CustomerHandler backs the create-customer endpoint the clients call
// to provision a payment-gateway customer record.
type CustomerHandler struct {
	fundsService funds.IFundsService
}

func NewCustomerHandler(fundsService funds.IFundsService) *CustomerHandler {
	return &CustomerHandler{fundsService: fundsService}
}

type createCustomerRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": err.Error(),
		})
		return
	}

	customerID, err := h.fundsService.CreateCustomer(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customerId": customerID})
}
