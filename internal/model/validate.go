package model

import (
	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
)

// DefaultMinEmployees is the intake floor applied when the config does
// not override it.
const DefaultMinEmployees = 50

// Validator checks companies at the intake boundary.
type Validator struct {
	v            *validator.Validate
	minEmployees int
}

// NewValidator creates a Validator with the given employee-count floor.
// A floor of 0 or below falls back to DefaultMinEmployees.
func NewValidator(minEmployees int) *Validator {
	if minEmployees <= 0 {
		minEmployees = DefaultMinEmployees
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("jurisdiction", func(fl validator.FieldLevel) bool {
		return ValidJurisdiction(fl.Field().String())
	})

	return &Validator{v: v, minEmployees: minEmployees}
}

// MinEmployees returns the configured employee-count floor.
func (va *Validator) MinEmployees() int {
	return va.minEmployees
}

// ValidateCompany returns an error describing the first constraint the
// company violates, or nil if it is acceptable for intake.
func (va *Validator) ValidateCompany(c *Company) error {
	if err := va.v.Struct(c); err != nil {
		return eris.Wrapf(err, "model: company %q failed validation", c.Name)
	}
	if c.EmployeeCount < va.minEmployees {
		return eris.Errorf("model: company %q has %d employees, below minimum %d",
			c.Name, c.EmployeeCount, va.minEmployees)
	}
	return nil
}
