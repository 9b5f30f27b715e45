package handlers

import (
	"net/http"
	"strconv"

	"takeout-api/models"
	"takeout-api/statemachine"

	"github.com/gin-gonic/gin"
)

func categoryFilter(c *gin.Context) (uint, bool) {
	raw := c.Query("category_id")
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// MenuCategories lists categories for the customer menu
func (h *CatalogHandler) MenuCategories(c *gin.Context) {
	h.ListCategories(c)
}

// MenuDishes returns the sellable dishes, optionally for one category
func (h *CatalogHandler) MenuDishes(c *gin.Context) {
	categoryID, ok := categoryFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_id must be a number"})
		return
	}
	dishes, err := h.dishes.ListSellable(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(dishes), "dishes": dishes})
}

// MenuCombos returns the sellable combos, optionally for one category
func (h *CatalogHandler) MenuCombos(c *gin.Context) {
	categoryID, ok := categoryFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_id must be a number"})
		return
	}
	combos, err := h.combos.ListSellable(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(combos), "combos": combos})
}

// MenuCombo returns one combo with its dishes. Combos off sale are hidden.
func (h *CatalogHandler) MenuCombo(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	combo, err := h.combos.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if combo.Status != models.StatusSellable {
		c.JSON(http.StatusNotFound, gin.H{"error": "Combo not available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"combo": combo})
}

// GetStateMachineInfo returns the full order state machine for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var terminal []models.OrderStatus
	for _, s := range []models.OrderStatus{
		models.StatusPendingPayment, models.StatusToBeConfirmed, models.StatusConfirmed,
		models.StatusDeliveryInProgress, models.StatusCompleted, models.StatusCancelled,
	} {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": terminal,
		"description":     "Takeout Order Lifecycle State Machine",
	})
}
