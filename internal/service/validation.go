package service

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
)

var timetableValidations = map[string]validator.Func{
	"weekday": func(fl validator.FieldLevel) bool {
		_, err := models.ParseDayOfWeek(fl.Field().String())
		return err == nil
	},
	"session_type": func(fl validator.FieldLevel) bool {
		return models.SessionType(fl.Field().String()).Valid()
	},
	"isodate": func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	},
	"tod": func(fl validator.FieldLevel) bool {
		_, err := models.ParseTimeOfDay(fl.Field().String())
		return err == nil
	},
}

// NewValidator returns a validator with the timetable tags registered. Build it
// once and share it between services.
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	for tag, fn := range timetableValidations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("register %s validation: %w", tag, err)
		}
	}
	return v, nil
}

var (
	defaultValidatorOnce sync.Once
	defaultValidator     *validator.Validate
)

// ensureValidator falls back to a process-wide validator when v is nil.
// A non-nil v must come from NewValidator.
func ensureValidator(v *validator.Validate) *validator.Validate {
	if v != nil {
		return v
	}
	defaultValidatorOnce.Do(func() {
		var err error
		if defaultValidator, err = NewValidator(); err != nil {
			panic(err)
		}
	})
	return defaultValidator
}
