package common

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct checks the validation tags on payload and returns the
// combined validation errors, or nil when the payload is well-formed.
func ValidateStruct(payload interface{}) error {
	if err := validate.Struct(payload); err != nil {
		return err.(validator.ValidationErrors)
	}
	return nil
}
