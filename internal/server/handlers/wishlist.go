package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KandruPoojitha/CryptoApp/internal/application/wishlist"
)

type WishlistHandler struct {
	wishlistService wishlist.IWishlistService
}

func NewWishlistHandler(wishlistService wishlist.IWishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

func (h *WishlistHandler) ListWishlist(c *gin.Context) {
	coins, err := h.wishlistService.List(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"coins": coins})
}

func (h *WishlistHandler) ToggleWishlist(c *gin.Context) {
	coinID := c.Param("coin_id")
	if coinID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Coin ID is required",
		})
		return
	}

	wishlisted, err := h.wishlistService.Toggle(c.Request.Context(), userID(c), coinID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wishlisted": wishlisted})
}
