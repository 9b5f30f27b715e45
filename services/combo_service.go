package services

import (
	"context"
	"fmt"

	"takeout-api/events"
	"takeout-api/logger"
	"takeout-api/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ComboInput struct {
	Name        string
	CategoryID  uint
	Price       decimal.Decimal
	Image       string
	Description string
	Status      models.SaleStatus // create only; empty means UNSELLABLE
	Dishes      []models.ComboDish
}

type ComboFilter struct {
	Page
	CategoryID uint
	Name       string
	Status     models.SaleStatus
}

type ComboService struct {
	db     *gorm.DB
	guard  CatalogGuard
	events events.Publisher
	logger *logger.Logger
}

func NewComboService(db *gorm.DB, pub events.Publisher, log *logger.Logger) *ComboService {
	return &ComboService{
		db:     db,
		events: pub,
		logger: log.WithComponent("combo_service"),
	}
}

// Create inserts the combo first so it has an id, then its membership rows
func (s *ComboService) Create(ctx context.Context, in ComboInput) (*models.Combo, error) {
	status := in.Status
	if status == "" {
		status = models.StatusUnsellable
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	combo := models.Combo{
		Name:        in.Name,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Image:       in.Image,
		Description: in.Description,
		Status:      status,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireCategory(tx, in.CategoryID); err != nil {
			return err
		}
		if taken, err := nameTaken(tx, &models.Combo{}, in.Name, 0); err != nil {
			return err
		} else if taken {
			return fmt.Errorf("%w: combo %q", ErrDuplicateName, in.Name)
		}
		members, err := resolveMembers(tx, in.Dishes, status)
		if err != nil {
			return err
		}
		if err := tx.Omit("Dishes").Create(&combo).Error; err != nil {
			return fmt.Errorf("insert combo: %w", err)
		}
		combo.Dishes, err = insertMembers(tx, combo.ID, members)
		return err
	})
	if err != nil {
		s.logger.Warn("Create combo failed", "name", in.Name, "error", err)
		return nil, err
	}

	s.logger.Info("Combo created", "id", combo.ID, "name", combo.Name, "dishes", len(combo.Dishes))
	return &combo, nil
}

// Update rewrites the combo attributes, deletes every membership row and
// inserts the new list. Status is left alone; use SetStatus.
func (s *ComboService) Update(ctx context.Context, id uint, in ComboInput) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var combo models.Combo
		if err := tx.First(&combo, id).Error; err != nil {
			return notFound(err, ErrComboNotFound, id)
		}
		if err := requireCategory(tx, in.CategoryID); err != nil {
			return err
		}
		if taken, err := nameTaken(tx, &models.Combo{}, in.Name, id); err != nil {
			return err
		} else if taken {
			return fmt.Errorf("%w: combo %q", ErrDuplicateName, in.Name)
		}
		members, err := resolveMembers(tx, in.Dishes, combo.Status)
		if err != nil {
			return err
		}

		err = tx.Model(&combo).Updates(map[string]any{
			"name":        in.Name,
			"category_id": in.CategoryID,
			"price":       in.Price,
			"image":       in.Image,
			"description": in.Description,
		}).Error
		if err != nil {
			return fmt.Errorf("update combo: %w", err)
		}

		if err := tx.Where("combo_id = ?", id).Delete(&models.ComboDish{}).Error; err != nil {
			return fmt.Errorf("delete combo dishes: %w", err)
		}
		_, err = insertMembers(tx, id, members)
		return err
	})
	if err != nil {
		s.logger.Warn("Update combo failed", "id", id, "error", err)
		return err
	}
	s.logger.Info("Combo updated", "id", id, "dishes", len(in.Dishes))
	return nil
}

// resolveMembers checks every member dish exists and fills the name and
// price snapshots. A combo on sale may only contain dishes on sale.
func resolveMembers(tx *gorm.DB, in []models.ComboDish, comboStatus models.SaleStatus) ([]models.ComboDish, error) {
	if len(in) == 0 {
		return nil, nil
	}
	ids := make([]uint, len(in))
	for i, m := range in {
		ids[i] = m.DishID
	}
	var dishes []models.Dish
	if err := tx.Where("id IN ?", ids).Find(&dishes).Error; err != nil {
		return nil, fmt.Errorf("load member dishes: %w", err)
	}
	byID := make(map[uint]models.Dish, len(dishes))
	for _, d := range dishes {
		byID[d.ID] = d
	}

	members := make([]models.ComboDish, len(in))
	for i, m := range in {
		dish, ok := byID[m.DishID]
		if !ok {
			return nil, fmt.Errorf("%w (id %d)", ErrDishNotFound, m.DishID)
		}
		if comboStatus == models.StatusSellable && dish.Status != models.StatusSellable {
			return nil, fmt.Errorf("%w (dish %d)", ErrComboEnableBlocked, dish.ID)
		}
		members[i] = models.ComboDish{
			DishID: dish.ID,
			Name:   m.Name,
			Price:  m.Price,
			Copies: m.Copies,
		}
		if members[i].Name == "" {
			members[i].Name = dish.Name
		}
		if members[i].Price.IsZero() {
			members[i].Price = dish.Price
		}
		if members[i].Copies <= 0 {
			members[i].Copies = 1
		}
	}
	return members, nil
}

func insertMembers(tx *gorm.DB, comboID uint, members []models.ComboDish) ([]models.ComboDish, error) {
	if len(members) == 0 {
		return nil, nil
	}
	for i := range members {
		members[i].ComboID = comboID
	}
	if err := tx.Create(&members).Error; err != nil {
		return nil, fmt.Errorf("insert combo dishes: %w", err)
	}
	return members, nil
}

func (s *ComboService) Get(ctx context.Context, id uint) (*models.Combo, error) {
	var combo models.Combo
	err := s.db.WithContext(ctx).
		Preload("Dishes", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&combo, id).Error
	if err != nil {
		return nil, notFound(err, ErrComboNotFound, id)
	}
	return &combo, nil
}

func (s *ComboService) List(ctx context.Context, f ComboFilter) ([]models.Combo, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Combo{})
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count combos: %w", err)
	}
	var combos []models.Combo
	if err := q.Scopes(paginate(f.Page)).Order("updated_at desc, id desc").Find(&combos).Error; err != nil {
		return nil, 0, fmt.Errorf("list combos: %w", err)
	}
	return combos, total, nil
}

func (s *ComboService) ListSellable(ctx context.Context, categoryID uint) ([]models.Combo, error) {
	var combos []models.Combo
	q := s.db.WithContext(ctx).Where("status = ?", models.StatusSellable)
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if err := q.Order("id").Find(&combos).Error; err != nil {
		return nil, fmt.Errorf("list sellable combos: %w", err)
	}
	return combos, nil
}

// SetStatus puts a combo on or off sale. Going on sale is refused while any
// member dish is off sale; membership is read before anything is written.
func (s *ComboService) SetStatus(ctx context.Context, id uint, status models.SaleStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var combo models.Combo
		if err := tx.Select("id").First(&combo, id).Error; err != nil {
			return notFound(err, ErrComboNotFound, id)
		}

		if status == models.StatusSellable {
			var dishIDs []uint
			err := tx.Model(&models.ComboDish{}).Where("combo_id = ?", id).Pluck("dish_id", &dishIDs).Error
			if err != nil {
				return fmt.Errorf("load combo dishes: %w", err)
			}
			if len(dishIDs) > 0 {
				var blocked []uint
				err := tx.Model(&models.Dish{}).
					Where("id IN ? AND status <> ?", dishIDs, models.StatusSellable).
					Order("id").
					Pluck("id", &blocked).Error
				if err != nil {
					return fmt.Errorf("check member dishes: %w", err)
				}
				if len(blocked) > 0 {
					return fmt.Errorf("%w (dishes %v)", ErrComboEnableBlocked, blocked)
				}
			}
		}

		if err := tx.Model(&models.Combo{}).Where("id = ?", id).Update("status", status).Error; err != nil {
			return fmt.Errorf("update combo status: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Set combo status failed", "id", id, "status", status, "error", err)
		return err
	}

	s.logger.Info("Combo status changed", "id", id, "status", status)
	publish(ctx, s.events, s.logger, events.KeyComboStatus, events.ComboStatusChanged{
		ComboID: id,
		Status:  status,
	})
	return nil
}

// DeleteBatch removes the combos and their membership rows, or nothing at all
func (s *ComboService) DeleteBatch(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.guard.CanDeleteCombos(tx, ids); err != nil {
			return err
		}
		if err := tx.Where("combo_id IN ?", ids).Delete(&models.ComboDish{}).Error; err != nil {
			return fmt.Errorf("delete combo dishes: %w", err)
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.Combo{}).Error; err != nil {
			return fmt.Errorf("delete combos: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Delete combos rejected", "ids", ids, "error", err)
		return err
	}
	s.logger.Info("Combos deleted", "ids", ids)
	return nil
}
