package models

import "time"

type CategoryType string

const (
	CategoryDish  CategoryType = "DISH"
	CategoryCombo CategoryType = "COMBO"
)

type Category struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"uniqueIndex;not null"`
	Type      CategoryType `json:"type" gorm:"not null"`
	Sort      int          `json:"sort"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
