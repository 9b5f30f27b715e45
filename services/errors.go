package services

import "errors"

// Business-rule violations. Callers compare with errors.Is.
var (
	ErrDishOnSale            = errors.New("dish is on sale and cannot be deleted")
	ErrDishReferencedByCombo = errors.New("dish is part of a combo and cannot be deleted")
	ErrComboOnSale           = errors.New("combo is on sale and cannot be deleted")
	ErrComboEnableBlocked    = errors.New("combo contains a dish that is not on sale")

	ErrDishNotFound     = errors.New("dish not found")
	ErrComboNotFound    = errors.New("combo not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category still has dishes or combos")
	ErrInvalidCategory  = errors.New("category type must be DISH or COMBO")
	ErrDuplicateName    = errors.New("name already exists")
	ErrInvalidStatus    = errors.New("invalid sale status")

	ErrEmptySelection = errors.New("either dish_id or combo_id is required")
	ErrCartEmpty      = errors.New("cart is empty")

	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderForbidden    = errors.New("order does not belong to you")
	ErrInvalidTransition = errors.New("invalid order status transition")

	ErrInvalidDateRange = errors.New("begin date must not be after end date")
)
