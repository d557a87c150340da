package validator

import (
	v10 "github.com/go-playground/validator/v10"
)

// StructValidator plugs validator/v10 into fiber's Bind pipeline, so request
// structs with validate tags are checked as part of Bind().Body.
type StructValidator struct {
	validate *v10.Validate
}

func New() *StructValidator {
	return &StructValidator{validate: v10.New(v10.WithRequiredStructEnabled())}
}

func (v *StructValidator) Validate(out any) error {
	return v.validate.Struct(out)
}
