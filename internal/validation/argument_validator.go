package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ArgumentValidator validates command-line arguments bound to tagged structs.
type ArgumentValidator struct {
	validate *validator.Validate
}

// NewArgumentValidator creates a validator that reports fields by their
// `arg` tag name.
func NewArgumentValidator() *ArgumentValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("arg")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &ArgumentValidator{validate: v}
}

// FieldError names the first failed field and its rule.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e *FieldError) Error() string {
	return formatFieldError(e.Field, e.Tag, e.Param)
}

// ValidateStruct validates s and returns the first failure as a *FieldError.
func (a *ArgumentValidator) ValidateStruct(s interface{}) error {
	err := a.validate.Struct(s)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return &FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()}
	}
	return err
}

// ValidateValue validates a single value against tag, e.g. "oneof=mean median".
func (a *ArgumentValidator) ValidateValue(name string, value interface{}, tag string) error {
	err := a.validate.Var(value, tag)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return &FieldError{Field: name, Tag: fe.Tag(), Param: fe.Param()}
	}
	return err
}

// formatFieldError formats validation error messages
func formatFieldError(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Replace(param, " ", ", ", -1))
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
