package routes

import (
	"takeout-api/handlers"
	"takeout-api/middleware"
	"takeout-api/models"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything SetupRoutes mounts. Upload may be nil when
// object storage is not configured.
type Handlers struct {
	JWTSecret []byte

	Auth    *handlers.AuthHandler
	Admin   *handlers.AdminHandler
	Catalog *handlers.CatalogHandler
	Cart    *handlers.CartHandler
	Orders  *handlers.OrderHandler
	Reports *handlers.ReportHandler
	Upload  *handlers.UploadHandler
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)

		// Menu (no auth needed)
		public.GET("/menu/categories", h.Catalog.MenuCategories)
		public.GET("/menu/dishes", h.Catalog.MenuDishes)
		public.GET("/menu/combos", h.Catalog.MenuCombos)
		public.GET("/menu/combos/:id", h.Catalog.MenuCombo)

		// State machine info
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(h.JWTSecret))
	{
		auth.GET("/profile", h.Auth.Profile)
	}

	// ── Customer routes ────────────────────────────────────────────
	user := r.Group("/api/user")
	user.Use(middleware.AuthRequired(h.JWTSecret), middleware.RoleRequired(models.RoleCustomer))
	{
		user.GET("/cart", h.Cart.List)
		user.POST("/cart", h.Cart.Add)
		user.POST("/cart/sub", h.Cart.Sub)
		user.DELETE("/cart", h.Cart.Clear)

		user.POST("/orders", h.Orders.Submit)
		user.GET("/orders", h.Orders.Mine)
		user.GET("/orders/:id", h.Orders.Detail)
		user.PUT("/orders/:id/pay", h.Orders.Pay)
		user.PUT("/orders/:id/cancel", h.Orders.Cancel)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(h.JWTSecret), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", h.Admin.Users)

		// Categories
		admin.POST("/categories", h.Catalog.CreateCategory)
		admin.GET("/categories", h.Catalog.ListCategories)
		admin.DELETE("/categories/:id", h.Catalog.DeleteCategory)

		// Dishes
		admin.POST("/dishes", h.Catalog.CreateDish)
		admin.GET("/dishes", h.Catalog.ListDishes)
		admin.GET("/dishes/:id", h.Catalog.GetDish)
		admin.PUT("/dishes/:id", h.Catalog.UpdateDish)
		admin.PUT("/dishes/:id/status", h.Catalog.SetDishStatus)
		admin.DELETE("/dishes", h.Catalog.DeleteDishes)

		// Combos
		admin.POST("/combos", h.Catalog.CreateCombo)
		admin.GET("/combos", h.Catalog.ListCombos)
		admin.GET("/combos/:id", h.Catalog.GetCombo)
		admin.PUT("/combos/:id", h.Catalog.UpdateCombo)
		admin.PUT("/combos/:id/status", h.Catalog.SetComboStatus)
		admin.DELETE("/combos", h.Catalog.DeleteCombos)

		if h.Upload != nil {
			admin.POST("/uploads", h.Upload.Image)
		}

		// Reports
		admin.GET("/reports/turnover", h.Reports.Turnover)
		admin.GET("/reports/users", h.Reports.Users)
		admin.GET("/reports/orders", h.Reports.Orders)
		admin.GET("/reports/top10", h.Reports.Top10)

		// Orders
		admin.GET("/orders", h.Orders.AdminList)
		admin.PUT("/orders/:id/status", h.Orders.AdminUpdateStatus)
	}
}
