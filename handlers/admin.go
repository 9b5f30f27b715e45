package handlers

import (
	"net/http"

	"takeout-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// Users returns all users, optionally filtered by role. Admin only.
func (h *AdminHandler) Users(c *gin.Context) {
	var users []models.User
	query := h.db.WithContext(c.Request.Context())
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Order("id").Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}

	summary := map[models.UserRole]int{}
	for _, u := range users {
		summary[u.Role]++
	}
	c.JSON(http.StatusOK, gin.H{"role_summary": summary, "count": len(users), "users": users})
}
