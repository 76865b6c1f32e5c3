package promote

import "github.com/sells-group/ple-import/internal/model"

// Summary reports what one promotion run did.
type Summary struct {
	Form model.FormKind `json:"form"`

	// Processed counts every staged row the run looked at, including
	// ones that ended up skipped.
	Processed int `json:"processed"`

	// Matched counts rows whose sponsor resolved to a company.
	Matched int `json:"matched"`

	// Inserted counts net-new filings. On a rerun over the same
	// staging data this is zero.
	Inserted int `json:"inserted"`

	// Skipped counts rows that wrote nothing: duplicates by AckID and
	// rows with no AckID at all.
	Skipped int `json:"skipped"`

	// EINsBackfilled counts companies that gained an EIN this run.
	EINsBackfilled int `json:"eins_backfilled"`

	// Cleared is the number of staging rows deleted after promotion.
	Cleared int64 `json:"cleared"`
}
