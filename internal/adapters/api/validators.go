package api

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"synergyai.app/pkg/errors"
)

// registerValidators installs the "entity" tag on gin's validator engine.
// The tag accepts only names of registered warmers.
func registerValidators(entities map[string]struct{}) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.NewConfigurationError("gin validator engine is not go-playground/validator", nil)
	}

	return v.RegisterValidation("entity", func(fl validator.FieldLevel) bool {
		_, known := entities[fl.Field().String()]
		return known
	})
}
