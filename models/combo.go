package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Combo is a fixed bundle of dishes sold as a single catalog entry
type Combo struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"uniqueIndex;not null"`
	CategoryID  uint            `json:"category_id" gorm:"index;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Status      SaleStatus      `json:"status" gorm:"not null;default:'UNSELLABLE'"`
	Dishes      []ComboDish     `json:"dishes,omitempty" gorm:"foreignKey:ComboID"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ComboDish is one membership row; name and price are snapshots of the dish
type ComboDish struct {
	ID      uint            `json:"id" gorm:"primaryKey"`
	ComboID uint            `json:"combo_id" gorm:"index;not null"`
	DishID  uint            `json:"dish_id" gorm:"index;not null"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Copies  int             `json:"copies" gorm:"not null;default:1"`
}
