package router

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/servly/pricing-api/internal/model"
)

// registerValidations installs custom binding rules on gin's validator
// engine. Must run before the first request is bound.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("pricing_model", func(fl validator.FieldLevel) bool {
		switch model.PricingModel(fl.Field().String()) {
		case model.ModelQuote, model.ModelBlackSholes, model.ModelMonteCarlo:
			return true
		}
		return false
	})
}
