package service

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	model "github.com/boxmaker/boxmaker-web/pkg/box"
)

// Validator checks box submissions and turns failures into form messages
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator. Field names in messages come from the
// label struct tag of model.BoxParams.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})
	// Registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("float", func(fl validator.FieldLevel) bool {
		_, ok := ParseNumber(fl.Field().String())
		return ok
	})
	return &Validator{validate: v}
}

// Validate returns one message per invalid field, in form order. The result
// is empty when params can be rendered.
func (v *Validator) Validate(params *model.BoxParams) model.ValidationErrors {
	if params == nil {
		return model.ValidationErrors{"Box parameters are required!"}
	}

	err := v.validate.Struct(params)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return model.ValidationErrors{err.Error()}
	}

	msgs := make(model.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required!")
		default:
			msgs = append(msgs, fe.Field()+" must be a number!")
		}
	}
	return msgs
}

// ParseNumber parses a decimal number as typed into the form. Surrounding
// whitespace is ignored; hexadecimal, NaN and infinite values are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
