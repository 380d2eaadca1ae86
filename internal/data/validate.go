package data

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"philcali.me/mealplanner/internal/exceptions"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Field errors are keyed by the request body names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// check runs the validate tags of input and folds the failures into one
// ValidationError. A partial check ignores fields that were not provided.
func check(input interface{}, partial bool) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return err
	}
	verr := exceptions.Validation()
	for _, failure := range failures {
		if partial && failure.Tag() == "required" {
			continue
		}
		verr.Add(failure.Field(), message(failure))
	}
	return verr.OrNil()
}

func message(failure validator.FieldError) string {
	param := failure.Param()
	text := failure.Kind() == reflect.String
	switch failure.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "max":
		if text {
			return "is too long"
		}
		return "must be at most " + param
	case "gte", "min":
		if param == "0" {
			return "must not be negative"
		}
		return "must be at least " + param
	case "gt":
		return "must be greater than " + param
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(param), ", ")
	case "datetime":
		layout := strings.NewReplacer("2006", "YYYY", "01", "MM", "02", "DD")
		return "must be formatted as " + layout.Replace(param)
	case "email":
		return "must be an email address"
	}
	return fmt.Sprintf("is invalid (%s)", failure.Tag())
}
