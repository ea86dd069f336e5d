// Package validation checks request structs against their `validate` tags and
// turns failures into per-field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/taskkeeper/internal/model"
)

type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their json name.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s and returns nil when it is valid.
func (v *Validator) Struct(s any) (model.FieldErrors, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("failed to validate input: %w", err)
	}

	fields := model.FieldErrors{}
	for _, fe := range verrs {
		fields.Add(fe.Field(), Message(fe.Field(), fe.Tag(), fe.Param()))
	}
	return fields, nil
}

// Message renders the message for a failed rule on field.
func Message(field, tag, param string) string {
	name := strings.ReplaceAll(field, "_", " ")

	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", name, param)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", name, param)
	case "string":
		return fmt.Sprintf("The %s field must be a string.", name)
	case "boolean":
		return fmt.Sprintf("The %s field must be true or false.", name)
	case "unique":
		return fmt.Sprintf("The %s has already been taken.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}
