package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// ErrValidation is matched by every validation failure
var ErrValidation = errors.New("validation failed")

// ValidationError reports the first field that failed validation
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrValidation
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// maxPrice is the first value NUMERIC(5,2) cannot hold
var maxPrice = decimal.NewFromInt(1000)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("stock_status", func(fl validator.FieldLevel) bool {
		_, ok := StockStatusLabels[fl.Field().String()]
		return ok
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.IsSlug(fl.Field().String())
	})

	return v
}

// ValidPrice reports whether d fits a price column: at most five digits, two of them decimals
func ValidPrice(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2)) && d.Abs().LessThan(maxPrice)
}

// checker is implemented by models with rules the tags cannot express
type checker interface {
	check() *ValidationError
}

// Validate checks a model against its validate tags
func Validate(model interface{}) error {
	err := validate.Struct(model)
	if err == nil {
		if c, ok := model.(checker); ok {
			if verr := c.check(); verr != nil {
				return verr
			}
		}
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Field: "-", Message: err.Error()}
	}

	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Message: message(fe)}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gtefield":
		return "must not be before " + fe.Param()
	case "slug":
		return "enter a valid slug of lowercase letters, numbers and hyphens"
	case "stock_status":
		return fmt.Sprintf("%q is not a valid choice", fe.Value())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
