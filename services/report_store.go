package services

import (
	"context"
	"fmt"
	"time"

	"takeout-api/logger"
	"takeout-api/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=report_store.go -destination=mock_report_store_test.go -package=services

// ReportStore runs the aggregate queries behind the admin reports. Every
// window is inclusive at both ends. Stored timestamps are UTC, so windows may
// be given in any zone.
type ReportStore interface {
	// SumCompletedAmount is invalid (null) when no order completed in the window
	SumCompletedAmount(ctx context.Context, begin, end time.Time) (decimal.NullDecimal, error)
	// CountUsers counts users created in [begin, end], or up to end when begin is nil
	CountUsers(ctx context.Context, begin *time.Time, end time.Time) (int64, error)
	// CountOrders counts orders placed in the window, optionally restricted to one status
	CountOrders(ctx context.Context, begin, end time.Time, status *models.OrderStatus) (int64, error)
	TopSellers(ctx context.Context, begin, end time.Time, limit int) ([]GoodsSales, error)
}

// GoodsSales is one item name and the quantity sold in completed orders
type GoodsSales struct {
	Name   string
	Number int64
}

type GormReportStore struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewGormReportStore(db *gorm.DB, log *logger.Logger) *GormReportStore {
	return &GormReportStore{db: db, logger: log.WithComponent("report_store")}
}

func (r *GormReportStore) SumCompletedAmount(ctx context.Context, begin, end time.Time) (decimal.NullDecimal, error) {
	var row struct {
		Total decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("SUM(amount) AS total").
		Where("status = ? AND order_time >= ? AND order_time <= ?", models.StatusCompleted, begin.UTC(), end.UTC()).
		Scan(&row).Error
	if err != nil {
		r.logger.Error("Failed to sum turnover", "error", err)
		return decimal.NullDecimal{}, fmt.Errorf("sum turnover: %w", err)
	}
	return row.Total, nil
}

func (r *GormReportStore) CountUsers(ctx context.Context, begin *time.Time, end time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.User{}).Where("created_at <= ?", end.UTC())
	if begin != nil {
		q = q.Where("created_at >= ?", begin.UTC())
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		r.logger.Error("Failed to count users", "error", err)
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *GormReportStore) CountOrders(ctx context.Context, begin, end time.Time, status *models.OrderStatus) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("order_time >= ? AND order_time <= ?", begin.UTC(), end.UTC())
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		r.logger.Error("Failed to count orders", "error", err)
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (r *GormReportStore) TopSellers(ctx context.Context, begin, end time.Time, limit int) ([]GoodsSales, error) {
	var rows []GoodsSales
	err := r.db.WithContext(ctx).
		Table("order_details AS d").
		Select("d.name AS name, SUM(d.number) AS number").
		Joins("JOIN orders AS o ON o.id = d.order_id").
		Where("o.status = ? AND o.order_time >= ? AND o.order_time <= ?", models.StatusCompleted, begin.UTC(), end.UTC()).
		Group("d.name").
		Order("SUM(d.number) DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		r.logger.Error("Failed to load top sellers", "error", err)
		return nil, fmt.Errorf("top sellers: %w", err)
	}
	return rows, nil
}
