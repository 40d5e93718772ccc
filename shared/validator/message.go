package validator

import (
	"errors"
	"fmt"
	"reflect"

	val "github.com/go-playground/validator/v10"
)

type formatter func(fe val.FieldError) string

func fixed(format string) formatter {
	return func(fe val.FieldError) string {
		return fmt.Sprintf(format, fe.Field())
	}
}

func withParam(format string) formatter {
	return func(fe val.FieldError) string {
		return fmt.Sprintf(format, fe.Field(), fe.Param())
	}
}

// sized words min and max by kind: strings count characters, slices count items.
func sized(bound string) formatter {
	return func(fe val.FieldError) string {
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be %s %s characters", fe.Field(), bound, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("%s must contain %s %s items", fe.Field(), bound, fe.Param())
		}

		if bound == "at least" {
			return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
		}

		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	}
}

var formatters = map[string]formatter{
	"required": fixed("%s is required"),
	"email":    fixed("%s must be a valid email address"),
	"uuid":     fixed("%s must be a valid UUID"),
	"dateonly": fixed("%s must be a date formatted as YYYY-MM-DD"),
	"gt":       withParam("%s must be greater than %s"),
	"gte":      withParam("%s must be greater than or equal to %s"),
	"lte":      withParam("%s must be less than or equal to %s"),
	"oneof":    withParam("%s must be one of %s"),
	"nefield":  withParam("%s must differ from %s"),
	"min":      sized("at least"),
	"max":      sized("at most"),
}

// message turns the first validation failure with a known tag into a sentence
// naming the JSON field.
func message(err error) string {
	var fieldErrs val.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	for _, fe := range fieldErrs {
		if format, ok := formatters[fe.Tag()]; ok {
			return format(fe)
		}
	}

	return fieldErrs.Error()
}
