package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one distinct item (dish+flavor or combo) in a user's cart.
// DishID and ComboID use 0 for "not set" so the unique index also covers
// lines that reference only one of them.
type CartLine struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_line"`
	DishID     uint            `json:"dish_id" gorm:"not null;default:0;uniqueIndex:idx_cart_line"`
	ComboID    uint            `json:"combo_id" gorm:"not null;default:0;uniqueIndex:idx_cart_line"`
	DishFlavor string          `json:"dish_flavor" gorm:"not null;default:'';uniqueIndex:idx_cart_line"`
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"` // unit price
	Number     int             `json:"number" gorm:"not null"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (CartLine) TableName() string {
	return "cart_lines"
}
