package handlers

import (
	"net/http"

	"takeout-api/middleware"
	"takeout-api/services"

	"github.com/gin-gonic/gin"
)

type CartRequest struct {
	DishID     uint   `json:"dish_id"`
	ComboID    uint   `json:"combo_id"`
	DishFlavor string `json:"dish_flavor"`
}

func (r CartRequest) selection() services.Selection {
	return services.Selection{DishID: r.DishID, ComboID: r.ComboID, DishFlavor: r.DishFlavor}
}

type CartHandler struct {
	cart *services.CartService
}

func NewCartHandler(cart *services.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// Add puts one more of the selected item in the caller's cart
func (h *CartHandler) Add(c *gin.Context) {
	var req CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.cart.Add(c.Request.Context(), middleware.GetUserID(c), req.selection()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart"})
}

// Sub takes one of the selected item out of the cart
func (h *CartHandler) Sub(c *gin.Context) {
	var req CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.cart.RemoveOne(c.Request.Context(), middleware.GetUserID(c), req.selection()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart"})
}

func (h *CartHandler) List(c *gin.Context) {
	lines, err := h.cart.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(lines), "items": lines})
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
