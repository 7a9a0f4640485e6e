// Package validation rejects malformed habit and log input before any
// mutation takes place.
package validation

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/julianstephens/habitgrid/internal/errors"
	"github.com/julianstephens/habitgrid/internal/models"
	"github.com/julianstephens/habitgrid/internal/utils"
)

var validate = newValidator()

// reasons maps "<Field>.<tag>" to the message shown to users
var reasons = map[string]string{
	"Name.required":        "must not be empty",
	"Name.notblank":        "must not be empty",
	"Color.hexcolor":       "must be a hex color such as #22c55e",
	"StartDate.ymd":        "must be a date in YYYY-MM-DD format",
	"StartDate.ymdorempty": "must be a date in YYYY-MM-DD format",
	"Time.hhmm":            "must be a time in HH:MM format",
}

var fieldNames = map[string]string{
	"StartDate": "start date",
	"Time":      "reminder time",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "ymd", func(fl validator.FieldLevel) bool {
		return utils.ValidateDateFormat(fl.Field().String())
	})
	mustRegister(v, "ymdorempty", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || utils.ValidateDateFormat(s)
	})
	mustRegister(v, "hhmm", func(fl validator.FieldLevel) bool {
		return utils.ValidateTimeFormat(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

// ValidateHabitInput checks a create payload.
func ValidateHabitInput(in models.HabitInput) error {
	if err := translate(validate.Struct(in)); err != nil {
		return err
	}
	return validateReminder(in.Reminder)
}

// ValidateHabitPatch checks a partial update.
func ValidateHabitPatch(p models.HabitPatch) error {
	if err := translate(validate.Struct(p)); err != nil {
		return err
	}
	if p.ClearReminder {
		return nil
	}
	return validateReminder(p.Reminder)
}

func validateReminder(r *models.Reminder) error {
	if r != nil && r.Enabled && r.Time == "" {
		return apperrors.Invalid("reminder time", "is required when the reminder is enabled")
	}
	return nil
}

// ValidateDate rejects a missing or malformed YYYY-MM-DD date.
func ValidateDate(date string) error {
	if date == "" {
		return apperrors.Invalid("date", "is required")
	}
	if !utils.ValidateDateFormat(date) {
		return apperrors.Invalid("date", fmt.Sprintf("%q is not in YYYY-MM-DD format", date))
	}
	return nil
}

// ValidateBackfillDate accepts today or any past date. Both arguments are
// YYYY-MM-DD strings, so lexical order is calendar order.
func ValidateBackfillDate(date, today string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	if date > today {
		return apperrors.Invalid("date", fmt.Sprintf("%s is in the future", date))
	}
	return nil
}

// translate converts the first validator failure into a ValidationError.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.Invalid("", err.Error())
	}
	fe := verrs[0]
	field, ok := fieldNames[fe.Field()]
	if !ok {
		field = strings.ToLower(fe.Field())
	}
	if reason, ok := reasons[fe.Field()+"."+fe.Tag()]; ok {
		return apperrors.Invalid(field, reason)
	}
	return apperrors.Invalid(field, fmt.Sprintf("is invalid (%s)", fe.Tag()))
}
