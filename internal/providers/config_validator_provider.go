package providers

import (
	"resultsd/internal/models"
	"resultsd/internal/structures"

	"github.com/gookit/validate"
)

func init() {
	validate.AddValidator("knownKey", func(val any) bool {
		s, ok := val.(string)
		return ok && models.IsKnownKey(s)
	})
}

type CnfValidator struct {
	conf *structures.Config
}

func (v *CnfValidator) Validate() error {
	return ValidateStruct(v.conf)
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// ValidateStruct runs the struct's validate tags, returning the collected
// field errors as one error.
func ValidateStruct(s any) error {
	v := validate.Struct(s)
	if !v.Validate() {
		return v.Errors
	}
	return nil
}
