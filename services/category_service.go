package services

import (
	"context"
	"fmt"

	"takeout-api/logger"
	"takeout-api/models"

	"gorm.io/gorm"
)

type CategoryService struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewCategoryService(db *gorm.DB, log *logger.Logger) *CategoryService {
	return &CategoryService{db: db, logger: log.WithComponent("category_service")}
}

func (s *CategoryService) Create(ctx context.Context, name string, typ models.CategoryType, sort int) (*models.Category, error) {
	if typ != models.CategoryDish && typ != models.CategoryCombo {
		return nil, ErrInvalidCategory
	}
	category := models.Category{Name: name, Type: typ, Sort: sort}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if taken, err := nameTaken(tx, &models.Category{}, name, 0); err != nil {
			return err
		} else if taken {
			return fmt.Errorf("%w: category %q", ErrDuplicateName, name)
		}
		if err := tx.Create(&category).Error; err != nil {
			return fmt.Errorf("insert category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Category created", "id", category.ID, "name", name, "type", typ)
	return &category, nil
}

// List returns categories ordered for display; an empty type lists all
func (s *CategoryService) List(ctx context.Context, typ models.CategoryType) ([]models.Category, error) {
	var categories []models.Category
	q := s.db.WithContext(ctx)
	if typ != "" {
		q = q.Where("type = ?", typ)
	}
	if err := q.Order("sort asc, id asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Delete refuses to remove a category that still has dishes or combos
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return notFound(err, ErrCategoryNotFound, id)
		}
		for _, model := range []any{&models.Dish{}, &models.Combo{}} {
			var n int64
			if err := tx.Model(model).Where("category_id = ?", id).Count(&n).Error; err != nil {
				return fmt.Errorf("count category items: %w", err)
			}
			if n > 0 {
				return fmt.Errorf("%w (id %d)", ErrCategoryInUse, id)
			}
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		s.logger.Warn("Delete category rejected", "id", id, "error", err)
		return err
	}
	s.logger.Info("Category deleted", "id", id)
	return nil
}
