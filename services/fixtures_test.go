package services

import (
	"context"
	"testing"

	"takeout-api/events"
	"takeout-api/logger"
	"takeout-api/models"
	"takeout-api/testutil"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type catalog struct {
	db     *gorm.DB
	events *events.Memory
	dishes *DishService
	combos *ComboService
	cat    models.Category
}

func newCatalog(t *testing.T) *catalog {
	t.Helper()
	db := testutil.NewDB(t)
	pub := &events.Memory{}
	cat := models.Category{Name: "Mains", Type: models.CategoryDish, Sort: 1}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return &catalog{
		db:     db,
		events: pub,
		dishes: NewDishService(db, pub, logger.Nop()),
		combos: NewComboService(db, pub, logger.Nop()),
		cat:    cat,
	}
}

func (c *catalog) dish(t *testing.T, name, price string, status models.SaleStatus) *models.Dish {
	t.Helper()
	d, err := c.dishes.Create(context.Background(), DishInput{
		Name:       name,
		CategoryID: c.cat.ID,
		Price:      decimal.RequireFromString(price),
		Status:     status,
	})
	if err != nil {
		t.Fatalf("create dish %s: %v", name, err)
	}
	return d
}

func (c *catalog) combo(t *testing.T, name string, status models.SaleStatus, dishes ...*models.Dish) *models.Combo {
	t.Helper()
	members := make([]models.ComboDish, len(dishes))
	for i, d := range dishes {
		members[i] = models.ComboDish{DishID: d.ID, Copies: 1}
	}
	cb, err := c.combos.Create(context.Background(), ComboInput{
		Name:       name,
		CategoryID: c.cat.ID,
		Price:      decimal.RequireFromString("20.00"),
		Status:     status,
		Dishes:     members,
	})
	if err != nil {
		t.Fatalf("create combo %s: %v", name, err)
	}
	return cb
}

func (c *catalog) dishStatus(t *testing.T, id uint) models.SaleStatus {
	t.Helper()
	var d models.Dish
	if err := c.db.First(&d, id).Error; err != nil {
		t.Fatalf("load dish %d: %v", id, err)
	}
	return d.Status
}

func (c *catalog) comboStatus(t *testing.T, id uint) models.SaleStatus {
	t.Helper()
	var cb models.Combo
	if err := c.db.First(&cb, id).Error; err != nil {
		t.Fatalf("load combo %d: %v", id, err)
	}
	return cb.Status
}

func count(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
