package services

import (
	"context"
	"fmt"
	"time"

	"takeout-api/logger"
	"takeout-api/models"

	"gorm.io/gorm"
)

// Selection identifies a cart item: a dish (with an optional flavor) or a combo
type Selection struct {
	DishID     uint   `json:"dish_id"`
	ComboID    uint   `json:"combo_id"`
	DishFlavor string `json:"dish_flavor"`
}

// normalize applies dish-over-combo precedence; flavors only apply to dishes
func (sel Selection) normalize() (Selection, error) {
	switch {
	case sel.DishID != 0:
		return Selection{DishID: sel.DishID, DishFlavor: sel.DishFlavor}, nil
	case sel.ComboID != 0:
		return Selection{ComboID: sel.ComboID}, nil
	default:
		return Selection{}, ErrEmptySelection
	}
}

type CartService struct {
	db     *gorm.DB
	logger *logger.Logger
	now    func() time.Time
}

func NewCartService(db *gorm.DB, log *logger.Logger) *CartService {
	return &CartService{db: db, logger: log.WithComponent("cart_service"), now: utcNow}
}

// matching finds the user's lines for a selection, lowest id first
func matching(tx *gorm.DB, userID uint, sel Selection) *gorm.DB {
	return tx.Where("user_id = ? AND dish_id = ? AND combo_id = ? AND dish_flavor = ?",
		userID, sel.DishID, sel.ComboID, sel.DishFlavor).Order("id asc")
}

// Add bumps the quantity of an existing line or creates a new one priced
// from the current dish or combo.
func (s *CartService) Add(ctx context.Context, userID uint, sel Selection) error {
	sel, err := sel.normalize()
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []models.CartLine
		if err := matching(tx, userID, sel).Limit(1).Find(&lines).Error; err != nil {
			return fmt.Errorf("find cart line: %w", err)
		}
		if len(lines) > 0 {
			line := lines[0]
			if err := tx.Model(&line).Update("number", line.Number+1).Error; err != nil {
				return fmt.Errorf("increment cart line: %w", err)
			}
			return nil
		}

		line := models.CartLine{
			UserID:     userID,
			DishID:     sel.DishID,
			ComboID:    sel.ComboID,
			DishFlavor: sel.DishFlavor,
			Number:     1,
			CreatedAt:  s.now(),
		}
		if sel.DishID != 0 {
			var dish models.Dish
			if err := tx.First(&dish, sel.DishID).Error; err != nil {
				return notFound(err, ErrDishNotFound, sel.DishID)
			}
			line.Name, line.Image, line.Amount = dish.Name, dish.Image, dish.Price
		} else {
			var combo models.Combo
			if err := tx.First(&combo, sel.ComboID).Error; err != nil {
				return notFound(err, ErrComboNotFound, sel.ComboID)
			}
			line.Name, line.Image, line.Amount = combo.Name, combo.Image, combo.Price
		}
		if err := tx.Create(&line).Error; err != nil {
			return fmt.Errorf("insert cart line: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Add to cart failed", "user_id", userID, "dish_id", sel.DishID, "combo_id", sel.ComboID, "error", err)
		return err
	}
	s.logger.Debug("Added to cart", "user_id", userID, "dish_id", sel.DishID, "combo_id", sel.ComboID)
	return nil
}

// RemoveOne decrements the matching line, deleting it instead of keeping a
// zero quantity. A selection with no line in the cart is a no-op.
func (s *CartService) RemoveOne(ctx context.Context, userID uint, sel Selection) error {
	sel, err := sel.normalize()
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []models.CartLine
		if err := matching(tx, userID, sel).Limit(1).Find(&lines).Error; err != nil {
			return fmt.Errorf("find cart line: %w", err)
		}
		if len(lines) == 0 {
			return nil
		}

		line := lines[0]
		if line.Number > 1 {
			if err := tx.Model(&line).Update("number", line.Number-1).Error; err != nil {
				return fmt.Errorf("decrement cart line: %w", err)
			}
			return nil
		}
		if err := tx.Delete(&models.CartLine{}, line.ID).Error; err != nil {
			return fmt.Errorf("delete cart line: %w", err)
		}
		return nil
	})
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartLine{}).Error; err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.logger.Debug("Cart cleared", "user_id", userID)
	return nil
}

func (s *CartService) List(ctx context.Context, userID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc, id asc").
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return lines, nil
}
