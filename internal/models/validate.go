package models

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is wrapped by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// payerTolerance absorbs float noise in shares like 33.33+33.33+33.34.
const payerTolerance = 0.001

// ValidationError lists every problem found on one entity.
type ValidationError struct {
	Entity   string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	_ = v.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
		return isHexColor(fl.Field().String())
	})

	v.RegisterStructValidation(transactionRules, Transaction{})
	return v
}

func transactionRules(sl validator.StructLevel) {
	t := sl.Current().Interface().(Transaction)

	if t.Amount.IsZero() {
		sl.ReportError(t.Amount, "amount", "Amount", "nonzero", "")
	}
	if err := t.BillingCycle.Validate(); err != nil {
		sl.ReportError(t.BillingCycle, "billing_cycle", "BillingCycle", "cycle", err.Error())
	}
	if len(t.Payers) > 0 {
		if total := t.Payers.Total(); math.Abs(total-100) > payerTolerance {
			sl.ReportError(t.Payers, "payers", "Payers", "payers_total", fmt.Sprintf("%g", total))
		}
	}
}

func check(entity string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &ValidationError{Entity: entity}
	for _, fe := range fieldErrs {
		verr.Problems = append(verr.Problems, describe(fe))
	}
	return verr
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "notblank", "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.Map {
			return fmt.Sprintf("%s needs at least %s entry", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s must be between 0 and 100", field)
	case "rgbhex":
		return fmt.Sprintf("%s must be a #RRGGBB color", field)
	case "nonzero":
		return fmt.Sprintf("%s must not be zero", field)
	case "cycle":
		return fmt.Sprintf("%s: %s", field, fe.Param())
	case "payers_total":
		return fmt.Sprintf("%s must add up to 100, got %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
