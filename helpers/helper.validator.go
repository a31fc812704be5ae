package helpers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type (
	// Enum is satisfied by string enums that know their allowed values.
	Enum interface {
		Values() []string
		IsValid() bool
	}

	IValidator interface {
		Violations(s interface{}) (map[string]string, error)
	}

	validate struct {
		engine *validator.Validate
	}
)

func NewValidator() IValidator {
	engine := validator.New(validator.WithRequiredStructEnabled())

	engine.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	engine.RegisterValidation("notempty", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		return field.Kind() != reflect.String || field.Len() > 0
	})

	engine.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		enum, ok := fl.Field().Interface().(Enum)
		return ok && enum.IsValid()
	})

	return &validate{engine: engine}
}

// Violations validates s and returns the message of the first violated rule
// of every failing field, keyed by json name. The error is only set when s
// cannot be validated at all.
func (h *validate) Violations(s interface{}) (map[string]string, error) {
	violations := map[string]string{}

	err := h.engine.Struct(s)
	if err == nil {
		return violations, nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil, err
	}

	for _, fe := range fieldErrors {
		if _, ok := violations[fe.Field()]; !ok {
			violations[fe.Field()] = h.message(fe)
		}
	}

	return violations, nil
}

func (h *validate) message(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)

	case "notempty":
		return fmt.Sprintf("%q is not allowed to be empty", field)

	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())

	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())

	case "email":
		return fmt.Sprintf("%q must be a valid email", field)

	case "enum":
		if enum, ok := fe.Value().(Enum); ok {
			return fmt.Sprintf("%q must be one of [%s]", field, strings.Join(enum.Values(), ", "))
		}

		return fmt.Sprintf("%q must be one of the allowed values", field)

	default:
		return fmt.Sprintf("%q failed on the %q rule", field, fe.Tag())
	}
}
