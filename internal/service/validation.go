package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

const clockLayout = "15:04"

// registerSchedulingValidations adds the tags used by scheduling payloads.
func registerSchedulingValidations(v *validator.Validate) {
	_ = v.RegisterValidation("dayofweek", func(fl validator.FieldLevel) bool {
		_, ok := models.NormalizeDay(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(clockLayout, fl.Field().String())
		return err == nil
	})
}

func newSchedulingValidator(v *validator.Validate) *validator.Validate {
	if v == nil {
		v = validator.New()
	}
	registerSchedulingValidations(v)
	return v
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func invalid(format string, args ...interface{}) error {
	return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf(format, args...))
}

// clockMinutes converts HH:MM to minutes past midnight.
func clockMinutes(value string) (int, error) {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// parseDate reads a YYYY-MM-DD date at day granularity.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, invalid("date must use YYYY-MM-DD")
	}
	return models.DateOnly(t), nil
}
