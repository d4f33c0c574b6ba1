package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Errors lists the failing fields in request order.
type Errors []FieldError

type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.message())
	}
	return strings.Join(parts, "; ")
}

func (fe FieldError) message() string {
	switch fe.Tag {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field, fe.Param)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field, fe.Param)
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field, fe.Tag)
	}
}

func ValidateStruct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// EchoValidator plugs ValidateStruct into echo.Echo.Validator.
type EchoValidator struct{}

func (EchoValidator) Validate(i any) error {
	return ValidateStruct(i)
}
