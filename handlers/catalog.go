package handlers

import (
	"net/http"

	"takeout-api/models"
	"takeout-api/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CategoryRequest struct {
	Name string              `json:"name" binding:"required"`
	Type models.CategoryType `json:"type" binding:"required,oneof=DISH COMBO"`
	Sort int                 `json:"sort"`
}

type FlavorRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type DishRequest struct {
	Name        string            `json:"name" binding:"required,max=64"`
	CategoryID  uint              `json:"category_id" binding:"required"`
	Price       decimal.Decimal   `json:"price"`
	Image       string            `json:"image"`
	Description string            `json:"description"`
	Status      models.SaleStatus `json:"status" binding:"omitempty,sale_status"`
	Flavors     []FlavorRequest   `json:"flavors" binding:"dive"`
}

func (r DishRequest) input() services.DishInput {
	flavors := make([]models.DishFlavor, len(r.Flavors))
	for i, f := range r.Flavors {
		flavors[i] = models.DishFlavor{Name: f.Name, Value: f.Value}
	}
	return services.DishInput{
		Name:        r.Name,
		CategoryID:  r.CategoryID,
		Price:       r.Price,
		Image:       r.Image,
		Description: r.Description,
		Status:      r.Status,
		Flavors:     flavors,
	}
}

type ComboDishRequest struct {
	DishID uint            `json:"dish_id" binding:"required"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Copies int             `json:"copies" binding:"omitempty,min=1"`
}

type ComboRequest struct {
	Name        string             `json:"name" binding:"required,max=64"`
	CategoryID  uint               `json:"category_id" binding:"required"`
	Price       decimal.Decimal    `json:"price"`
	Image       string             `json:"image"`
	Description string             `json:"description"`
	Status      models.SaleStatus  `json:"status" binding:"omitempty,sale_status"`
	Dishes      []ComboDishRequest `json:"dishes" binding:"dive"`
}

func (r ComboRequest) input() services.ComboInput {
	members := make([]models.ComboDish, len(r.Dishes))
	for i, d := range r.Dishes {
		members[i] = models.ComboDish{DishID: d.DishID, Name: d.Name, Price: d.Price, Copies: d.Copies}
	}
	return services.ComboInput{
		Name:        r.Name,
		CategoryID:  r.CategoryID,
		Price:       r.Price,
		Image:       r.Image,
		Description: r.Description,
		Status:      r.Status,
		Dishes:      members,
	}
}

type StatusRequest struct {
	Status models.SaleStatus `json:"status" binding:"required,sale_status"`
}

type catalogQuery struct {
	services.Page
	CategoryID uint              `form:"category_id"`
	Name       string            `form:"name"`
	Status     models.SaleStatus `form:"status" binding:"omitempty,sale_status"`
}

// CatalogHandler serves the admin catalog and the public menu
type CatalogHandler struct {
	categories *services.CategoryService
	dishes     *services.DishService
	combos     *services.ComboService
}

func NewCatalogHandler(categories *services.CategoryService, dishes *services.DishService, combos *services.ComboService) *CatalogHandler {
	return &CatalogHandler{categories: categories, dishes: dishes, combos: combos}
}

// ── Categories ─────────────────────────────────────────────────

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := h.categories.Create(c.Request.Context(), req.Name, req.Type, req.Sort)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context(), models.CategoryType(c.Query("type")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(categories), "categories": categories})
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// ── Dishes ─────────────────────────────────────────────────────

func (h *CatalogHandler) CreateDish(c *gin.Context) {
	var req DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dish, err := h.dishes.Create(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Dish created", "dish": dish})
}

func (h *CatalogHandler) UpdateDish(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.dishes.Update(c.Request.Context(), id, req.input()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish updated"})
}

func (h *CatalogHandler) GetDish(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dish, err := h.dishes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dish": dish})
}

func (h *CatalogHandler) ListDishes(c *gin.Context) {
	var q catalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dishes, total, err := h.dishes.List(c.Request.Context(), services.DishFilter{
		Page: q.Page, CategoryID: q.CategoryID, Name: q.Name, Status: q.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "dishes": dishes})
}

func (h *CatalogHandler) SetDishStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.dishes.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish status updated", "status": req.Status})
}

func (h *CatalogHandler) DeleteDishes(c *gin.Context) {
	ids, err := queryIDs(c, "ids")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.dishes.DeleteBatch(c.Request.Context(), ids); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dishes deleted", "ids": ids})
}

// ── Combos ─────────────────────────────────────────────────────

func (h *CatalogHandler) CreateCombo(c *gin.Context) {
	var req ComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	combo, err := h.combos.Create(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Combo created", "combo": combo})
}

func (h *CatalogHandler) UpdateCombo(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req ComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.combos.Update(c.Request.Context(), id, req.input()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Combo updated"})
}

func (h *CatalogHandler) GetCombo(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"combo": combo})
}

func (h *CatalogHandler) ListCombos(c *gin.Context) {
	var q catalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	combos, total, err := h.combos.List(c.Request.Context(), services.ComboFilter{
		Page: q.Page, CategoryID: q.CategoryID, Name: q.Name, Status: q.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "combos": combos})
}

func (h *CatalogHandler) SetComboStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.combos.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Combo status updated", "status": req.Status})
}

func (h *CatalogHandler) DeleteCombos(c *gin.Context) {
	ids, err := queryIDs(c, "ids")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.combos.DeleteBatch(c.Request.Context(), ids); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Combos deleted", "ids": ids})
}
