package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sbworks/marketplace/internal/core/domain"
)

// structValidator plugs go-playground/validator into echo.Echo.Validator.
// Field names in messages follow the json tag the client actually sent.
type structValidator struct {
	v *validator.Validate
}

func NewValidator() *structValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &structValidator{v: v}
}

func (sv *structValidator) Validate(i any) error {
	err := sv.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, len(ve))
	for i, fe := range ve {
		msgs[i] = describe(fe)
	}
	return errors.New(strings.Join(msgs, "; "))
}

func validationError(err error) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
}

func describe(fe validator.FieldError) string {
	field, p := fe.Field(), fe.Param()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, p)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, p)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(p, " ", ", "))
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}
