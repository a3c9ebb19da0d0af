package api

import (
	"jewelry_store/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin/binding"       // Gin request binding
	"github.com/go-playground/validator/v10" // Struct validation
)

// registerValidators adds the custom binding tags used by request structs
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil // A non-default engine is installed; custom tags are unavailable
	}
	// orderstatus accepts pending, success or canceled
	return v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
		return domain.ValidOrderStatus(fl.Field().String())
	})
}
