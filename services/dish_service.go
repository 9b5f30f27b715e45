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

type DishInput struct {
	Name        string
	CategoryID  uint
	Price       decimal.Decimal
	Image       string
	Description string
	Status      models.SaleStatus // create only; empty means UNSELLABLE
	Flavors     []models.DishFlavor
}

type DishFilter struct {
	Page
	CategoryID uint
	Name       string
	Status     models.SaleStatus
}

type DishService struct {
	db     *gorm.DB
	guard  CatalogGuard
	events events.Publisher
	logger *logger.Logger
}

func NewDishService(db *gorm.DB, pub events.Publisher, log *logger.Logger) *DishService {
	return &DishService{
		db:     db,
		events: pub,
		logger: log.WithComponent("dish_service"),
	}
}

// Create inserts the dish, then its flavors stamped with the new id
func (s *DishService) Create(ctx context.Context, in DishInput) (*models.Dish, error) {
	status := in.Status
	if status == "" {
		status = models.StatusUnsellable
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	dish := models.Dish{
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
		if taken, err := nameTaken(tx, &models.Dish{}, in.Name, 0); err != nil {
			return err
		} else if taken {
			return fmt.Errorf("%w: dish %q", ErrDuplicateName, in.Name)
		}
		if err := tx.Omit("Flavors").Create(&dish).Error; err != nil {
			return fmt.Errorf("insert dish: %w", err)
		}
		flavors, err := insertFlavors(tx, dish.ID, in.Flavors)
		if err != nil {
			return err
		}
		dish.Flavors = flavors
		return nil
	})
	if err != nil {
		s.logger.Warn("Create dish failed", "name", in.Name, "error", err)
		return nil, err
	}

	s.logger.Info("Dish created", "id", dish.ID, "name", dish.Name, "flavors", len(dish.Flavors))
	return &dish, nil
}

// Update rewrites the dish attributes and replaces its whole flavor set.
// Status is left alone; use SetStatus.
func (s *DishService) Update(ctx context.Context, id uint, in DishInput) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dish models.Dish
		if err := tx.First(&dish, id).Error; err != nil {
			return notFound(err, ErrDishNotFound, id)
		}
		if err := requireCategory(tx, in.CategoryID); err != nil {
			return err
		}
		if taken, err := nameTaken(tx, &models.Dish{}, in.Name, id); err != nil {
			return err
		} else if taken {
			return fmt.Errorf("%w: dish %q", ErrDuplicateName, in.Name)
		}

		err := tx.Model(&dish).Updates(map[string]any{
			"name":        in.Name,
			"category_id": in.CategoryID,
			"price":       in.Price,
			"image":       in.Image,
			"description": in.Description,
		}).Error
		if err != nil {
			return fmt.Errorf("update dish: %w", err)
		}

		if err := tx.Where("dish_id = ?", id).Delete(&models.DishFlavor{}).Error; err != nil {
			return fmt.Errorf("delete flavors: %w", err)
		}
		_, err = insertFlavors(tx, id, in.Flavors)
		return err
	})
	if err != nil {
		s.logger.Warn("Update dish failed", "id", id, "error", err)
		return err
	}
	s.logger.Info("Dish updated", "id", id, "flavors", len(in.Flavors))
	return nil
}

func insertFlavors(tx *gorm.DB, dishID uint, in []models.DishFlavor) ([]models.DishFlavor, error) {
	if len(in) == 0 {
		return nil, nil
	}
	flavors := make([]models.DishFlavor, len(in))
	for i, f := range in {
		flavors[i] = models.DishFlavor{DishID: dishID, Name: f.Name, Value: f.Value}
	}
	if err := tx.Create(&flavors).Error; err != nil {
		return nil, fmt.Errorf("insert flavors: %w", err)
	}
	return flavors, nil
}

func (s *DishService) Get(ctx context.Context, id uint) (*models.Dish, error) {
	var dish models.Dish
	err := s.db.WithContext(ctx).
		Preload("Flavors", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&dish, id).Error
	if err != nil {
		return nil, notFound(err, ErrDishNotFound, id)
	}
	return &dish, nil
}

func (s *DishService) List(ctx context.Context, f DishFilter) ([]models.Dish, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Dish{})
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
		return nil, 0, fmt.Errorf("count dishes: %w", err)
	}
	var dishes []models.Dish
	if err := q.Scopes(paginate(f.Page)).Order("updated_at desc, id desc").Find(&dishes).Error; err != nil {
		return nil, 0, fmt.Errorf("list dishes: %w", err)
	}
	return dishes, total, nil
}

// ListSellable returns the customer-facing menu for a category
func (s *DishService) ListSellable(ctx context.Context, categoryID uint) ([]models.Dish, error) {
	var dishes []models.Dish
	q := s.db.WithContext(ctx).Preload("Flavors").Where("status = ?", models.StatusSellable)
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if err := q.Order("id").Find(&dishes).Error; err != nil {
		return nil, fmt.Errorf("list sellable dishes: %w", err)
	}
	return dishes, nil
}

// SetStatus changes a dish's status. Taking a dish off sale also takes
// every combo that contains it off sale, in the same transaction.
func (s *DishService) SetStatus(ctx context.Context, id uint, status models.SaleStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	var disabled []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dish models.Dish
		if err := tx.Select("id").First(&dish, id).Error; err != nil {
			return notFound(err, ErrDishNotFound, id)
		}

		if status == models.StatusUnsellable {
			comboIDs, err := comboIDsByDishIDs(tx, []uint{id})
			if err != nil {
				return err
			}
			if len(comboIDs) > 0 {
				err := tx.Model(&models.Combo{}).
					Where("id IN ?", comboIDs).
					Update("status", models.StatusUnsellable).Error
				if err != nil {
					return fmt.Errorf("disable combos: %w", err)
				}
			}
			disabled = comboIDs
		}

		if err := tx.Model(&models.Dish{}).Where("id = ?", id).Update("status", status).Error; err != nil {
			return fmt.Errorf("update dish status: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Set dish status failed", "id", id, "status", status, "error", err)
		return err
	}

	s.logger.Info("Dish status changed", "id", id, "status", status, "disabled_combos", disabled)
	publish(ctx, s.events, s.logger, events.KeyDishStatus, events.DishStatusChanged{
		DishID:         id,
		Status:         status,
		DisabledCombos: disabled,
	})
	return nil
}

// DeleteBatch removes the dishes and their flavors, or nothing at all
func (s *DishService) DeleteBatch(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.guard.CanDeleteDishes(tx, ids); err != nil {
			return err
		}
		if err := tx.Where("dish_id IN ?", ids).Delete(&models.DishFlavor{}).Error; err != nil {
			return fmt.Errorf("delete flavors: %w", err)
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.Dish{}).Error; err != nil {
			return fmt.Errorf("delete dishes: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Delete dishes rejected", "ids", ids, "error", err)
		return err
	}
	s.logger.Info("Dishes deleted", "ids", ids)
	return nil
}
