package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"takeout-api/events"
	"takeout-api/logger"
	"takeout-api/models"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Page is a 1-based page request
type Page struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

func utcNow() time.Time { return time.Now().UTC() }

func paginate(p Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		page := p.Page
		if page <= 0 {
			page = 1
		}
		size := p.PageSize
		switch {
		case size <= 0:
			size = defaultPageSize
		case size > maxPageSize:
			size = maxPageSize
		}
		return db.Offset((page - 1) * size).Limit(size)
	}
}

// nameTaken reports whether another row of the model already uses name
func nameTaken(tx *gorm.DB, model any, name string, exceptID uint) (bool, error) {
	var n int64
	q := tx.Model(model).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check name: %w", err)
	}
	return n > 0, nil
}

func requireCategory(tx *gorm.DB, id uint) error {
	var n int64
	if err := tx.Model(&models.Category{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w (id %d)", ErrCategoryNotFound, id)
	}
	return nil
}

// notFound maps gorm's missing-row error to a domain error
func notFound(err, domainErr error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w (id %d)", domainErr, id)
	}
	return err
}

// publish is best effort: the change is already committed
func publish(ctx context.Context, pub events.Publisher, log *logger.Logger, key string, payload any) {
	if err := pub.Publish(ctx, key, payload); err != nil {
		log.Warn("Failed to publish event", "routing_key", key, "error", err)
	}
}
