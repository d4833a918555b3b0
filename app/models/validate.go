package models

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs the shared validator over any tagged struct.
func ValidateStruct(v any) error {
	return validate.Struct(v)
}
