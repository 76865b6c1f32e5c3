// Package model defines the golden record types for the PLE company data model.
package model

import (
	"time"
)

// Company is the golden record for a business entity in the PLE hub.
type Company struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name" validate:"required"`
	City string `json:"city,omitempty" db:"city"`

	// State must be one of the fixed jurisdiction codes (see jurisdictions.go).
	State string `json:"state" db:"state" validate:"required,jurisdiction"`

	// EmployeeCount must be at or above the configured intake minimum.
	EmployeeCount int `json:"employee_count" db:"employee_count" validate:"gte=0"`

	// EIN is the 9-digit federal employer identifier. Either fully
	// present or nil, never a partial value.
	EIN *string `json:"ein,omitempty" db:"ein" validate:"omitempty,len=9,number"`

	// EmailPattern is the company-level address template, e.g. "{f}{last}@".
	EmailPattern           string `json:"email_pattern,omitempty" db:"email_pattern"`
	EmailPatternConfidence int    `json:"email_pattern_confidence" db:"email_pattern_confidence" validate:"gte=0,lte=100"`

	Domain      string `json:"domain,omitempty" db:"domain"`
	LinkedInURL string `json:"linkedin_url,omitempty" db:"linkedin_url"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasEIN reports whether a federal identifier is on record.
func (c *Company) HasEIN() bool {
	return c.EIN != nil && *c.EIN != ""
}

// Slot is a named role at a company (e.g. "CFO", "Plan Administrator").
// Contact data attaches to the slot, not to the person occupying it;
// occupants change over time while the slot persists.
type Slot struct {
	ID          int64      `json:"id" db:"id"`
	CompanyID   string     `json:"company_id" db:"company_id"`
	Role        string     `json:"role" db:"role"`
	PersonFirst string     `json:"person_first,omitempty" db:"person_first"`
	PersonLast  string     `json:"person_last,omitempty" db:"person_last"`
	Email       string     `json:"email,omitempty" db:"email"`
	Phone       string     `json:"phone,omitempty" db:"phone"`
	FilledAt    *time.Time `json:"filled_at,omitempty" db:"filled_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Filled reports whether the slot currently has an occupant.
func (s *Slot) Filled() bool {
	return s.PersonLast != ""
}
