package services

import (
	"fmt"

	"takeout-api/models"

	"gorm.io/gorm"
)

// CatalogGuard decides whether a batch of dishes or combos may be removed.
// It only reads; callers run it inside the transaction that performs the
// deletion so the whole batch is applied or rejected together.
type CatalogGuard struct{}

// CanDeleteDishes rejects the batch if any dish is on sale or used by a combo
func (CatalogGuard) CanDeleteDishes(tx *gorm.DB, ids []uint) error {
	var dishes []models.Dish
	if err := tx.Select("id", "status").Where("id IN ?", ids).Find(&dishes).Error; err != nil {
		return fmt.Errorf("load dishes: %w", err)
	}
	status := make(map[uint]models.SaleStatus, len(dishes))
	for _, d := range dishes {
		status[d.ID] = d.Status
	}
	for _, id := range ids {
		s, ok := status[id]
		if !ok {
			return fmt.Errorf("%w (id %d)", ErrDishNotFound, id)
		}
		if s == models.StatusSellable {
			return fmt.Errorf("%w (id %d)", ErrDishOnSale, id)
		}
	}

	comboIDs, err := comboIDsByDishIDs(tx, ids)
	if err != nil {
		return err
	}
	if len(comboIDs) > 0 {
		return fmt.Errorf("%w (combos %v)", ErrDishReferencedByCombo, comboIDs)
	}
	return nil
}

// CanDeleteCombos rejects the batch if any combo is on sale
func (CatalogGuard) CanDeleteCombos(tx *gorm.DB, ids []uint) error {
	var combos []models.Combo
	if err := tx.Select("id", "status").Where("id IN ?", ids).Find(&combos).Error; err != nil {
		return fmt.Errorf("load combos: %w", err)
	}
	status := make(map[uint]models.SaleStatus, len(combos))
	for _, c := range combos {
		status[c.ID] = c.Status
	}
	for _, id := range ids {
		s, ok := status[id]
		if !ok {
			return fmt.Errorf("%w (id %d)", ErrComboNotFound, id)
		}
		if s == models.StatusSellable {
			return fmt.Errorf("%w (id %d)", ErrComboOnSale, id)
		}
	}
	return nil
}

// comboIDsByDishIDs is the batched reverse lookup from dishes to the combos using them
func comboIDsByDishIDs(tx *gorm.DB, dishIDs []uint) ([]uint, error) {
	var comboIDs []uint
	err := tx.Model(&models.ComboDish{}).
		Where("dish_id IN ?", dishIDs).
		Distinct("combo_id").
		Order("combo_id").
		Pluck("combo_id", &comboIDs).Error
	if err != nil {
		return nil, fmt.Errorf("lookup combos by dishes: %w", err)
	}
	return comboIDs, nil
}
