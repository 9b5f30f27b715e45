package handlers

import (
	"errors"
	"sync"

	"takeout-api/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the sale_status and order_status binding tags to
// gin's validator. Safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	var err error
	registerOnce.Do(func() {
		if err = v.RegisterValidation("sale_status", func(fl validator.FieldLevel) bool {
			return models.SaleStatus(fl.Field().String()).Valid()
		}); err != nil {
			return
		}
		err = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
			switch models.OrderStatus(fl.Field().String()) {
			case models.StatusPendingPayment, models.StatusToBeConfirmed, models.StatusConfirmed,
				models.StatusDeliveryInProgress, models.StatusCompleted, models.StatusCancelled:
				return true
			}
			return false
		})
	})
	return err
}
