package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/utils"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("yyyymmdd", func(fl validator.FieldLevel) bool {
			return IsDate(fl.Field().String())
		})
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Struct validates a create or update input by its struct tags. Failures are
// returned as a single Validation error naming every rejected field.
func Struct(input any) error {
	err := instance().Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Internal("validation.Struct", err)
	}

	fields := ProcessValidationErrors(verrs)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, fields[name])
	}
	return errors.Validation("%s", strings.Join(msgs, "; "))
}

// ProcessValidationErrors maps each failing field to a readable message.
func ProcessValidationErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s cannot be empty", fe.Field())
	case "oneof":
		return fmt.Sprintf("invalid %s %q: must be one of [%s]", fe.Field(), fe.Value(), fe.Param())
	case "yyyymmdd":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field())
	case "json":
		return fmt.Sprintf("%s must be valid JSON", fe.Field())
	case "min", "max":
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// IsDate reports whether s is a real calendar date in YYYY-MM-DD format.
func IsDate(s string) bool {
	if len(s) != len(constants.DateFormat) {
		return false
	}
	_, err := utils.ParseDate(s)
	return err == nil
}

// NewEntryDate checks the date of a manually created journal entry against
// today: entries start in 2026 and future dates are locked.
func NewEntryDate(date, today string) error {
	if !IsDate(date) {
		return errors.Validation("invalid date format %q: expected YYYY-MM-DD", date)
	}
	if date[:4] < fmt.Sprintf("%04d", constants.MinJournalYear) {
		return errors.Validation("journal entries must start from %d onwards", constants.MinJournalYear)
	}
	if date > today {
		return errors.Validation("future dates are locked for new entries")
	}
	return nil
}

// EditableEntryDate rejects edits to entries dated after today.
func EditableEntryDate(date, today string) error {
	if !IsDate(date) {
		return errors.Validation("invalid entry date format %q", date)
	}
	if date > today {
		return errors.Validation("future entries cannot be modified")
	}
	return nil
}

// Year checks that a scaffold year is representable as a four digit date.
func Year(year int) error {
	if year < 1 || year > 9999 {
		return errors.Validation("year %d is out of range 1..9999", year)
	}
	return nil
}
