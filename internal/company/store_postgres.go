package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"
	"github.com/sells-group/ple-import/internal/db"
	"github.com/sells-group/ple-import/internal/model"
)

// PostgresStore implements Store using pgx.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Create inserts a new company and sets its timestamps. An empty ID is
// assigned a fresh UUID; callers may pre-assign one for tests.
func (s *PostgresStore) Create(ctx context.Context, c *model.Company) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO ple.companies (
			id, name, city, state, employee_count, ein,
			email_pattern, email_pattern_confidence, domain, linkedin_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		c.ID, c.Name, c.City, c.State, c.EmployeeCount, c.EIN,
		c.EmailPattern, c.EmailPatternConfidence, c.Domain, c.LinkedInURL,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return eris.Wrapf(err, "company: create %q", c.Name)
	}
	return nil
}

// Get fetches a company by ID.
func (s *PostgresStore) Get(ctx context.Context, id string) (*model.Company, error) {
	c := &model.Company{}
	err := s.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM ple.companies WHERE id=$1`, id).
		Scan(companyDests(c)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "company: get %s", id)
	}
	return c, nil
}

// FindExactName finds a company by case-insensitive name equality
// within a state. Lowest ID wins when several rows qualify, keeping
// resolution deterministic across reruns.
func (s *PostgresStore) FindExactName(ctx context.Context, name, state string) (*model.Company, error) {
	c := &model.Company{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+companyColumns+`
		FROM ple.companies
		WHERE lower(name) = lower($1) AND state = $2
		ORDER BY id
		LIMIT 1`, name, state).
		Scan(companyDests(c)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "company: find exact %q/%s", name, state)
	}
	return c, nil
}

// FindFuzzy finds a company by bidirectional case-insensitive name
// containment, constrained to the same city and state. Same tie-break
// as FindExactName.
func (s *PostgresStore) FindFuzzy(ctx context.Context, name, city, state string) (*model.Company, error) {
	c := &model.Company{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+companyColumns+`
		FROM ple.companies
		WHERE state = $3 AND lower(city) = lower($2)
			AND (name ILIKE '%' || $1 || '%' OR $1 ILIKE '%' || name || '%')
		ORDER BY id
		LIMIT 1`, name, city, state).
		Scan(companyDests(c)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "company: find fuzzy %q/%s/%s", name, city, state)
	}
	return c, nil
}

// BackfillEIN writes the EIN only when the row has none. The WHERE
// clause enforces first-writer-wins without a round trip. An EIN
// already held by another company trips the unique index and reports
// as not written.
func (s *PostgresStore) BackfillEIN(ctx context.Context, id, ein string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE ple.companies SET ein=$2, updated_at=now()
		WHERE id=$1 AND ein IS NULL`, id, ein)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, nil
		}
		return false, eris.Wrapf(err, "company: backfill ein %s", id)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateEmailPattern stores a detected pattern and its confidence.
func (s *PostgresStore) UpdateEmailPattern(ctx context.Context, id, pattern string, confidence int) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE ple.companies SET email_pattern=$2, email_pattern_confidence=$3, updated_at=now()
		WHERE id=$1`, id, pattern, confidence)
	if err != nil {
		return eris.Wrapf(err, "company: update email pattern %s", id)
	}
	return nil
}

// UpsertSlot inserts or updates an outreach slot, keyed on the
// company and role.
func (s *PostgresStore) UpsertSlot(ctx context.Context, sl *model.Slot) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO ple.company_slots (company_id, role, person_first, person_last, email, phone, filled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id, role) DO UPDATE SET
			person_first=EXCLUDED.person_first, person_last=EXCLUDED.person_last,
			email=EXCLUDED.email, phone=EXCLUDED.phone,
			filled_at=EXCLUDED.filled_at, updated_at=now()
		RETURNING id, created_at, updated_at`,
		sl.CompanyID, sl.Role, sl.PersonFirst, sl.PersonLast, sl.Email, sl.Phone, sl.FilledAt,
	).Scan(&sl.ID, &sl.CreatedAt, &sl.UpdatedAt)
	if err != nil {
		return eris.Wrapf(err, "company: upsert slot %s/%s", sl.CompanyID, sl.Role)
	}
	return nil
}

// GetSlots returns all slots for a company, filled or not.
func (s *PostgresStore) GetSlots(ctx context.Context, companyID string) ([]model.Slot, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, role, person_first, person_last, email, phone, filled_at, created_at, updated_at
		FROM ple.company_slots WHERE company_id=$1 ORDER BY role`, companyID)
	if err != nil {
		return nil, eris.Wrap(err, "company: get slots")
	}
	defer rows.Close()

	var slots []model.Slot
	for rows.Next() {
		var sl model.Slot
		if err := rows.Scan(&sl.ID, &sl.CompanyID, &sl.Role, &sl.PersonFirst, &sl.PersonLast,
			&sl.Email, &sl.Phone, &sl.FilledAt, &sl.CreatedAt, &sl.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "company: scan slot")
		}
		slots = append(slots, sl)
	}
	return slots, rows.Err()
}

// CountFilledSlots counts slots with an identified person.
func (s *PostgresStore) CountFilledSlots(ctx context.Context, companyID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM ple.company_slots
		WHERE company_id=$1 AND person_last <> ''`, companyID).Scan(&n)
	if err != nil {
		return 0, eris.Wrapf(err, "company: count filled slots %s", companyID)
	}
	return n, nil
}

// companyColumns is the standard column list for company queries.
const companyColumns = `id, name, city, state, employee_count, ein,
	email_pattern, email_pattern_confidence, domain, linkedin_url,
	created_at, updated_at`

// companyDests returns scan destinations for a Company.
func companyDests(c *model.Company) []any {
	return []any{
		&c.ID, &c.Name, &c.City, &c.State, &c.EmployeeCount, &c.EIN,
		&c.EmailPattern, &c.EmailPatternConfidence, &c.Domain, &c.LinkedInURL,
		&c.CreatedAt, &c.UpdatedAt,
	}
}
