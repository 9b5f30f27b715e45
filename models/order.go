package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of a takeout order
type OrderStatus string

const (
	StatusPendingPayment     OrderStatus = "PENDING_PAYMENT"
	StatusToBeConfirmed      OrderStatus = "TO_BE_CONFIRMED"
	StatusConfirmed          OrderStatus = "CONFIRMED"
	StatusDeliveryInProgress OrderStatus = "DELIVERY_IN_PROGRESS"
	StatusCompleted          OrderStatus = "COMPLETED"
	StatusCancelled          OrderStatus = "CANCELLED"
)

type Order struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	Number        string               `json:"number" gorm:"uniqueIndex;not null"`
	UserID        uint                 `json:"user_id" gorm:"index;not null"`
	Status        OrderStatus          `json:"status" gorm:"index;not null;default:'PENDING_PAYMENT'"`
	Amount        decimal.Decimal      `json:"amount" gorm:"type:decimal(10,2);not null"`
	Address       string               `json:"address" gorm:"not null"`
	Remark        string               `json:"remark"`
	OrderTime     time.Time            `json:"order_time" gorm:"index;not null"`
	CheckoutTime  *time.Time           `json:"checkout_time"`
	DeliveryTime  *time.Time           `json:"delivery_time"`
	Details       []OrderDetail        `json:"details,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// OrderDetail snapshots a cart line at the time the order was placed
type OrderDetail struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OrderID    uint            `json:"order_id" gorm:"index;not null"`
	DishID     uint            `json:"dish_id"`
	ComboID    uint            `json:"combo_id"`
	DishFlavor string          `json:"dish_flavor"`
	Name       string          `json:"name" gorm:"not null"`
	Image      string          `json:"image"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Number     int             `json:"number" gorm:"not null"`
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"index;not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
