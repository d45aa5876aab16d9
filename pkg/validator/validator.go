package validator

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/healthdesk/clinic-api/internal/model"
)

// RegisterCustom adds the domain validations to gin's binding engine.
// Call once at startup, before routes are served.
func RegisterCustom() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	if err := v.RegisterValidation("slotdate", func(fl validator.FieldLevel) bool {
		_, err := model.ParseSlotDate(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	return v.RegisterValidation("slottime", func(fl validator.FieldLevel) bool {
		_, err := model.ParseSlotTime(fl.Field().String())
		return err == nil
	})
}
