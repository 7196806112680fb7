package services

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator"
)

const DateLayout = "2006-01-02"

var entityValidator = newEntityValidator()

func newEntityValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// validateEntity checks the range tags declared on a model before it reaches storage.
func validateEntity(entity any) error {
	err := entityValidator.Struct(entity)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	fields := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		fields = append(fields, fieldError.Field())
	}
	return invalidFieldsError(fields...)
}

// requiredField pairs a payload key with whether the caller supplied it.
type requiredField struct {
	name    string
	present bool
}

func checkRequired(fields ...requiredField) error {
	missing := make([]string, 0)
	for _, field := range fields {
		if !field.present {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return missingFieldsError(missing...)
	}
	return nil
}

func present[T any](value *T) bool {
	return value != nil
}

func presentText(value *string) bool {
	return value != nil && strings.TrimSpace(*value) != ""
}

// ParseCalendarDate accepts only YYYY-MM-DD and returns midnight UTC of that date.
func ParseCalendarDate(raw string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(raw))
}

// CalendarDate returns midnight UTC of the calendar day value falls on in location.
func CalendarDate(value time.Time, location *time.Location) time.Time {
	local := DateAtLocation(value, location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayRange is the half-open interval covering value's calendar day in location.
func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

func FormatCalendarDate(value time.Time) string {
	return value.UTC().Format(DateLayout)
}
