package staging

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/ple-import/internal/db"
	"github.com/sells-group/ple-import/internal/model"
)

// stagingColumns matches the COPY column order for staging.filing_rows.
var stagingColumns = []string{
	"form_kind", "ack_id", "sponsor_name", "city", "state", "ein",
	"plan_name", "received_date", "participants", "total_assets",
}

// Store defines persistence operations for staged extract rows.
type Store interface {
	// BulkInsert loads a batch of raw rows via COPY and returns the
	// number written.
	BulkInsert(ctx context.Context, rows []Row) (int64, error)

	// List returns all staged rows for one form kind in insertion
	// order, so promotion processes a load deterministically.
	List(ctx context.Context, form model.FormKind) ([]Row, error)

	// Count returns the number of staged rows for one form kind.
	Count(ctx context.Context, form model.FormKind) (int, error)

	// Clear deletes all staged rows for one form kind.
	Clear(ctx context.Context, form model.FormKind) (int64, error)
}

// PostgresStore implements Store using pgx.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// BulkInsert loads raw rows into staging.filing_rows via COPY.
func (s *PostgresStore) BulkInsert(ctx context.Context, rows []Row) (int64, error) {
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{
			r.FormKind, r.AckID, r.SponsorName, r.City, r.State, r.EIN,
			r.PlanName, r.ReceivedDate, r.Participants, r.TotalAssets,
		})
	}
	return db.CopyFromSchema(ctx, s.pool, "staging", "filing_rows", stagingColumns, values)
}

// List returns staged rows for one form kind ordered by id.
func (s *PostgresStore) List(ctx context.Context, form model.FormKind) ([]Row, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, form_kind, ack_id, sponsor_name, city, state, ein,
			plan_name, received_date, participants, total_assets
		FROM staging.filing_rows
		WHERE form_kind=$1
		ORDER BY id`, form)
	if err != nil {
		return nil, eris.Wrapf(err, "staging: list %s", form)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Count returns the number of staged rows for one form kind.
func (s *PostgresStore) Count(ctx context.Context, form model.FormKind) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM staging.filing_rows WHERE form_kind=$1`, form).Scan(&n)
	if err != nil {
		return 0, eris.Wrapf(err, "staging: count %s", form)
	}
	return n, nil
}

// Clear deletes staged rows for one form kind after promotion.
func (s *PostgresStore) Clear(ctx context.Context, form model.FormKind) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM staging.filing_rows WHERE form_kind=$1`, form)
	if err != nil {
		return 0, eris.Wrapf(err, "staging: clear %s", form)
	}
	return tag.RowsAffected(), nil
}

func scanRows(rows pgx.Rows) ([]Row, error) {
	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ID, &r.FormKind, &r.AckID, &r.SponsorName, &r.City, &r.State,
			&r.EIN, &r.PlanName, &r.ReceivedDate, &r.Participants, &r.TotalAssets); err != nil {
			return nil, eris.Wrap(err, "staging: scan row")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
