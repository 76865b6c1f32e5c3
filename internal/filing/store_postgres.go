package filing

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sells-group/ple-import/internal/db"
)

// PostgresStore implements Store using pgx.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Insert writes a filing keyed on its AckID. ON CONFLICT DO NOTHING
// makes the write idempotent; the row count distinguishes a fresh
// insert from a duplicate.
func (s *PostgresStore) Insert(ctx context.Context, r *Record) (Outcome, error) {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO ple.filings (
			ack_id, form_kind, sponsor_name, city, state, ein,
			plan_name, received_date, participants, total_assets, company_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (ack_id) DO NOTHING`,
		r.AckID, r.FormKind, r.SponsorName, r.City, r.State, r.EIN,
		r.PlanName, r.ReceivedDate, r.Participants, r.TotalAssets, r.CompanyID,
	)
	if err != nil {
		return SkippedDuplicate, eris.Wrapf(err, "filing: insert %s", r.AckID)
	}
	if tag.RowsAffected() == 0 {
		return SkippedDuplicate, nil
	}
	return Inserted, nil
}

// CountByCompany returns the number of filings linked to a company.
func (s *PostgresStore) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM ple.filings WHERE company_id=$1`, companyID).Scan(&n)
	if err != nil {
		return 0, eris.Wrapf(err, "filing: count by company %s", companyID)
	}
	return n, nil
}

// HasFiling reports whether a company has at least one linked filing.
func (s *PostgresStore) HasFiling(ctx context.Context, companyID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM ple.filings WHERE company_id=$1)`, companyID).Scan(&exists)
	if err != nil {
		return false, eris.Wrapf(err, "filing: has filing %s", companyID)
	}
	return exists, nil
}
