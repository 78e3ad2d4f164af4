package handlers

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators attaches billing-specific binding rules to gin's
// validator engine. Must run before the first request is bound.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// dateonly accepts calendar dates in YYYY-MM-DD form. Entry and fiscal
		// year dates carry no time-of-day component.
		v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("2006-01-02", fl.Field().String())
			return err == nil
		})
	}
}
