package handlers

import (
	"net/http"

	"takeout-api/middleware"
	"takeout-api/models"
	"takeout-api/services"

	"github.com/gin-gonic/gin"
)

type SubmitOrderRequest struct {
	Address string `json:"address" binding:"required"`
	Remark  string `json:"remark" binding:"max=200"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,order_status"`
	Note   string             `json:"note"`
}

type orderQuery struct {
	services.Page
	Status models.OrderStatus `form:"status" binding:"omitempty,order_status"`
	Number string             `form:"number"`
	UserID uint               `form:"user_id"`
}

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Submit turns the caller's cart into an order awaiting payment
func (h *OrderHandler) Submit(c *gin.Context) {
	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.orders.Submit(c.Request.Context(), middleware.GetUserID(c), services.SubmitInput{
		Address: req.Address,
		Remark:  req.Remark,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// Mine returns the caller's orders, newest first
func (h *OrderHandler) Mine(c *gin.Context) {
	var p services.Page
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	orders, total, err := h.orders.ListForUser(c.Request.Context(), middleware.GetUserID(c), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "orders": orders})
}

// Detail returns one of the caller's orders with its status history
func (h *OrderHandler) Detail(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.orders.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *OrderHandler) Pay(c *gin.Context) {
	h.customerTransition(c, models.StatusToBeConfirmed, "Paid by customer")
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	h.customerTransition(c, models.StatusCancelled, "Order cancelled by customer")
}

func (h *OrderHandler) customerTransition(c *gin.Context, to models.OrderStatus, note string) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err = h.orders.Transition(c.Request.Context(), middleware.GetUserID(c), models.RoleCustomer, id, to, note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order_id": id, "current_status": to})
}

// AdminList returns every order matching the filters plus a per-status summary of the page
func (h *OrderHandler) AdminList(c *gin.Context) {
	var q orderQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	orders, total, err := h.orders.ListAll(c.Request.Context(), services.OrderFilter{
		Page: q.Page, Status: q.Status, Number: q.Number, UserID: q.UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	summary := map[models.OrderStatus]int{}
	for _, o := range orders {
		summary[o.Status]++
	}
	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total":         total,
		"orders":        orders,
	})
}

// AdminUpdateStatus moves an order along the admin side of the lifecycle
func (h *OrderHandler) AdminUpdateStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err = h.orders.Transition(c.Request.Context(), middleware.GetUserID(c), models.RoleAdmin, id, req.Status, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status updated",
		"order_id":       id,
		"current_status": req.Status,
	})
}
