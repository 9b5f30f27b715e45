package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"takeout-api/events"
	"takeout-api/logger"
	"takeout-api/models"
	"takeout-api/statemachine"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SubmitInput struct {
	Address string
	Remark  string
}

type OrderFilter struct {
	Page
	Status models.OrderStatus
	Number string
	UserID uint
}

type OrderService struct {
	db     *gorm.DB
	events events.Publisher
	logger *logger.Logger
	now    func() time.Time
}

func NewOrderService(db *gorm.DB, pub events.Publisher, log *logger.Logger) *OrderService {
	return &OrderService{
		db:     db,
		events: pub,
		logger: log.WithComponent("order_service"),
		now:    utcNow,
	}
}

func orderNumber(at time.Time, userID uint) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("ORD%s%d-%s", at.Format("20060102150405"), userID, suffix)
}

// Submit turns the user's cart into a pending order and empties the cart
func (s *OrderService) Submit(ctx context.Context, userID uint, in SubmitInput) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []models.CartLine
		if err := tx.Where("user_id = ?", userID).Order("created_at asc, id asc").Find(&lines).Error; err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		now := s.now()
		total := decimal.Zero
		details := make([]models.OrderDetail, len(lines))
		for i, l := range lines {
			total = total.Add(l.Amount.Mul(decimal.NewFromInt(int64(l.Number))))
			details[i] = models.OrderDetail{
				DishID:     l.DishID,
				ComboID:    l.ComboID,
				DishFlavor: l.DishFlavor,
				Name:       l.Name,
				Image:      l.Image,
				Amount:     l.Amount,
				Number:     l.Number,
			}
		}

		order = models.Order{
			Number:    orderNumber(now, userID),
			UserID:    userID,
			Status:    models.StatusPendingPayment,
			Amount:    total,
			Address:   in.Address,
			Remark:    in.Remark,
			OrderTime: now,
		}
		if err := tx.Omit("Details", "StatusHistory").Create(&order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		for i := range details {
			details[i].OrderID = order.ID
		}
		if err := tx.Create(&details).Error; err != nil {
			return fmt.Errorf("insert order details: %w", err)
		}
		order.Details = details

		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPendingPayment,
			ChangedBy: userID,
			Note:      "Order placed by customer",
			CreatedAt: now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("insert status history: %w", err)
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartLine{}).Error; err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Submit order failed", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Info("Order submitted", "id", order.ID, "number", order.Number, "user_id", userID, "amount", order.Amount.String())
	return &order, nil
}

// Transition moves an order to a new status on behalf of actorID. Customers
// may only move their own orders.
func (s *OrderService) Transition(ctx context.Context, actorID uint, role models.UserRole, orderID uint, to models.OrderStatus, note string) error {
	var order models.Order
	var from models.OrderStatus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return notFound(err, ErrOrderNotFound, orderID)
		}
		if role != models.RoleAdmin && order.UserID != actorID {
			return fmt.Errorf("%w (id %d)", ErrOrderForbidden, orderID)
		}
		if err := statemachine.CanTransition(order.Status, to, role); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidTransition, err.Error())
		}

		from = order.Status
		now := s.now()
		updates := map[string]any{"status": to}
		switch to {
		case models.StatusToBeConfirmed:
			updates["checkout_time"] = now
		case models.StatusCompleted:
			updates["delivery_time"] = now
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   to,
			ChangedBy:  actorID,
			Note:       note,
			CreatedAt:  now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("insert status history: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrOrderForbidden) {
			s.logger.Warn("Order transition rejected", "id", orderID, "to", to, "actor", actorID, "error", err)
		} else {
			s.logger.Error("Order transition failed", "id", orderID, "to", to, "error", err)
		}
		return err
	}

	s.logger.Info("Order status changed", "id", orderID, "from", from, "to", to, "actor", actorID)
	publish(ctx, s.events, s.logger, events.KeyOrderStatus, events.OrderStatusChanged{
		OrderID: orderID,
		Number:  order.Number,
		From:    from,
		To:      to,
	})
	return nil
}

// Get loads an order with details and history. A non-zero userID restricts
// the lookup to that user's orders.
func (s *OrderService) Get(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&order, orderID).Error
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound, orderID)
	}
	if userID != 0 && order.UserID != userID {
		return nil, fmt.Errorf("%w (id %d)", ErrOrderForbidden, orderID)
	}
	return &order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID uint, p Page) ([]models.Order, int64, error) {
	return s.ListAll(ctx, OrderFilter{Page: p, UserID: userID})
}

func (s *OrderService) ListAll(ctx context.Context, f OrderFilter) ([]models.Order, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Order{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Number != "" {
		q = q.Where("number LIKE ?", "%"+f.Number+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	var orders []models.Order
	err := q.Scopes(paginate(f.Page)).
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("order_time desc, id desc").
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}
