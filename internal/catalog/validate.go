package catalog

import (
	"errors"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"PetStore/pkg/kit"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("money", moneyScale)
	return v
}

func moneyScale(fl validator.FieldLevel) bool {
	cents := fl.Field().Float() * 100
	return math.Abs(cents-math.Round(cents)) < 1e-3
}

type ValidationError struct {
	Fields []kit.FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "invalid product: " + strings.Join(names, ", ")
}

func validateProduct(p Product) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]kit.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, kit.FieldError{
			Field:  strings.ToLower(fe.Field()),
			Reason: reasonFor(fe),
		})
	}
	return &ValidationError{Fields: fields}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "money":
		return "must have at most 2 decimal places"
	default:
		return "invalid"
	}
}
