package company

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ple-import/internal/model"
)

func TestPostgresStore_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO ple.companies`).
		WithArgs(pgxmock.AnyArg(), "Acme Corp", "Columbus", "OH", 120, pgxmock.AnyArg(),
			"", 0, "", "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	c := &model.Company{Name: "Acme Corp", City: "Columbus", State: "OH", EmployeeCount: 120}
	err = store.Create(context.Background(), c)

	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, now, c.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)

	mock.ExpectQuery(`SELECT .+ FROM ple.companies WHERE id=\$1`).
		WithArgs("missing").
		WillReturnRows(companyRows())

	c, err := store.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindExactName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)

	ein := "123456789"
	mock.ExpectQuery(`lower\(name\) = lower\(\$1\) AND state = \$2`).
		WithArgs("ACME CORP", "OH").
		WillReturnRows(companyRows().AddRow(
			"id-1", "Acme Corp", "Columbus", "OH", 120, &ein,
			"", 0, "", "", time.Now(), time.Now()))

	c, err := store.FindExactName(context.Background(), "ACME CORP", "OH")

	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "id-1", c.ID)
	assert.True(t, c.HasEIN())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindFuzzy_NoMatch(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)

	mock.ExpectQuery(`ILIKE`).
		WithArgs("Acme", "Columbus", "OH").
		WillReturnRows(companyRows())

	c, err := store.FindFuzzy(context.Background(), "Acme", "Columbus", "OH")

	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_BackfillEIN(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"empty column is written", 1, true},
		{"existing value is kept", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			store := NewPostgresStore(mock)

			mock.ExpectExec(`UPDATE ple.companies SET ein=\$2.+WHERE id=\$1 AND ein IS NULL`).
				WithArgs("id-1", "987654321").
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			wrote, err := store.BackfillEIN(context.Background(), "id-1", "987654321")

			require.NoError(t, err)
			assert.Equal(t, tt.want, wrote)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresStore_BackfillEIN_HeldByOtherCompany(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)

	// The EIN unique index rejects the write when another company
	// already carries this EIN. That reports as not written, not as an
	// error.
	mock.ExpectExec(`UPDATE ple.companies SET ein=\$2`).
		WithArgs("id-1", "987654321").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "companies_ein_idx"})

	wrote, err := store.BackfillEIN(context.Background(), "id-1", "987654321")

	require.NoError(t, err)
	assert.False(t, wrote)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateEmailPattern(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)

	mock.ExpectExec(`UPDATE ple.companies SET email_pattern=\$2`).
		WithArgs("id-1", "{f}{last}@", 90).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = store.UpdateEmailPattern(context.Background(), "id-1", "{f}{last}@", 90)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertSlot(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO ple.company_slots`).
		WithArgs("id-1", "CFO", "Jane", "Doe", "jdoe@acme.com", "", &now).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), now, now))

	sl := &model.Slot{
		CompanyID:   "id-1",
		Role:        "CFO",
		PersonFirst: "Jane",
		PersonLast:  "Doe",
		Email:       "jdoe@acme.com",
		FilledAt:    &now,
	}
	err = store.UpsertSlot(context.Background(), sl)

	require.NoError(t, err)
	assert.Equal(t, int64(7), sl.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CountFilledSlots(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)

	mock.ExpectQuery(`SELECT count\(\*\) FROM ple.company_slots`).
		WithArgs("id-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	n, err := store.CountFilledSlots(context.Background(), "id-1")

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func companyRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "name", "city", "state", "employee_count", "ein",
		"email_pattern", "email_pattern_confidence", "domain", "linkedin_url",
		"created_at", "updated_at",
	})
}
