// Package company persists and resolves Company golden records.
package company

import (
	"context"

	"github.com/sells-group/ple-import/internal/model"
)

// Store defines persistence operations for companies and their slots.
type Store interface {
	// Create inserts a new company, assigning its ID when empty.
	// The company must already have passed intake validation.
	Create(ctx context.Context, c *model.Company) error

	// Get fetches a company by ID. Returns (nil, nil) when absent.
	Get(ctx context.Context, id string) (*model.Company, error)

	// FindExactName returns a company whose name equals the given name
	// case-insensitively within the same state, or (nil, nil). Ties are
	// broken by lowest ID so reruns resolve identically.
	FindExactName(ctx context.Context, name, state string) (*model.Company, error)

	// FindFuzzy returns a company in the same city and state whose name
	// contains, or is contained by, the given name, case-insensitively.
	// Returns (nil, nil) when no candidate exists. Same tie-break as
	// FindExactName.
	FindFuzzy(ctx context.Context, name, city, state string) (*model.Company, error)

	// BackfillEIN sets the company's EIN only if none is on record.
	// Returns true when the write happened; an existing EIN is never
	// overwritten (first writer wins), and an EIN already held by a
	// different company reports false rather than an error.
	BackfillEIN(ctx context.Context, id, ein string) (bool, error)

	// UpdateEmailPattern stores the detected pattern and its confidence.
	UpdateEmailPattern(ctx context.Context, id, pattern string, confidence int) error

	// Slots
	UpsertSlot(ctx context.Context, s *model.Slot) error
	GetSlots(ctx context.Context, companyID string) ([]model.Slot, error)
	CountFilledSlots(ctx context.Context, companyID string) (int, error)
}
