package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus controls whether a dish or combo can currently be ordered
type SaleStatus string

const (
	StatusSellable   SaleStatus = "SELLABLE"
	StatusUnsellable SaleStatus = "UNSELLABLE"
)

func (s SaleStatus) Valid() bool {
	return s == StatusSellable || s == StatusUnsellable
}

type Dish struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"uniqueIndex;not null"`
	CategoryID  uint            `json:"category_id" gorm:"index;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Status      SaleStatus      `json:"status" gorm:"not null;default:'UNSELLABLE'"`
	Flavors     []DishFlavor    `json:"flavors,omitempty" gorm:"foreignKey:DishID"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DishFlavor is owned by its dish and is always replaced as a whole set
type DishFlavor struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	DishID uint   `json:"dish_id" gorm:"index;not null"`
	Name   string `json:"name" gorm:"not null"`
	Value  string `json:"value"` // e.g. ["mild","medium","hot"]
}
