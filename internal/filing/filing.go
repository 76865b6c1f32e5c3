// Package filing persists promoted DOL Form 5500 filing records.
package filing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sells-group/ple-import/internal/model"
)

// Record is a single promoted filing. AckID is the DOL acknowledgment
// identifier and is unique across all filings of all form kinds; it is
// the idempotency key for promotion.
type Record struct {
	ID           int64            `json:"id" db:"id"`
	AckID        string           `json:"ack_id" db:"ack_id"`
	FormKind     model.FormKind   `json:"form_kind" db:"form_kind"`
	SponsorName  string           `json:"sponsor_name" db:"sponsor_name"`
	City         string           `json:"city,omitempty" db:"city"`
	State        string           `json:"state,omitempty" db:"state"`
	EIN          string           `json:"ein,omitempty" db:"ein"`
	PlanName     string           `json:"plan_name,omitempty" db:"plan_name"`
	ReceivedDate *time.Time       `json:"received_date,omitempty" db:"received_date"`
	Participants *int             `json:"participants,omitempty" db:"participants"`
	TotalAssets  *decimal.Decimal `json:"total_assets,omitempty" db:"total_assets"`

	// CompanyID links the filing to its resolved company. Nil when the
	// sponsor matched no company at promotion time.
	CompanyID *string `json:"company_id,omitempty" db:"company_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Outcome reports what Insert did with a record.
type Outcome int

const (
	// Inserted means the record was net-new.
	Inserted Outcome = iota
	// SkippedDuplicate means a filing with the same AckID already
	// existed and the database was left untouched.
	SkippedDuplicate
)

func (o Outcome) String() string {
	if o == SkippedDuplicate {
		return "skipped_duplicate"
	}
	return "inserted"
}

// Store defines persistence operations for filings.
type Store interface {
	// Insert writes the record unless its AckID is already present.
	// Re-running a promotion therefore never duplicates filings.
	Insert(ctx context.Context, r *Record) (Outcome, error)

	// CountByCompany returns the number of filings linked to a company.
	CountByCompany(ctx context.Context, companyID string) (int, error)

	// HasFiling reports whether at least one filing links to a company.
	HasFiling(ctx context.Context, companyID string) (bool, error)
}
