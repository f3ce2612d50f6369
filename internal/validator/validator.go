// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"campuscash/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

func configure(v *validator.Validate) {
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("notblank", validateNotBlank)
	_ = v.RegisterValidation("amount", validateAmount)

	// decimals compare as numbers so gte/lte/gt work on amounts
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}

// decimalValue maps out-of-range decimals to NaN without converting them,
// which fails the amount tag and every numeric comparison.
func decimalValue(field reflect.Value) interface{} {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	if !models.AmountInRange(d) {
		return math.NaN()
	}
	return d.InexactFloat64()
}

// validateAmount must run before gte/lte on decimal fields.
func validateAmount(fl validator.FieldLevel) bool {
	f := fl.Field()
	return f.Kind() == reflect.Float64 && !math.IsNaN(f.Float())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Messages turns binding validation failures into one human-readable
// message per JSON field. ok is false when err is not a validation error.
func Messages(err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = message(fe)
	}
	return fields, true
}

func message(fe validator.FieldError) string {
	label := strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "email":
		return "Valid email is required"
	case "min":
		if fe.Kind() == reflect.String {
			return label + " must be at least " + fe.Param() + " characters"
		}
		return label + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return label + " must be at most " + fe.Param() + " characters"
		}
		return label + " must be at most " + fe.Param()
	case "gte":
		return label + " must be at least " + fe.Param()
	case "amount", "lte":
		return label + " must be at most " + models.MaxAmount.StringFixed(2)
	case "transaction_type":
		return "Type must be income or expense"
	default:
		return label + " is invalid"
	}
}
