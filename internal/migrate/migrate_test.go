package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func migrationFileNames(t *testing.T) []string {
	t.Helper()
	entries, err := fs.ReadDir(migrationFS, "migrations")
	require.NoError(t, err)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func expectLock(mock pgxmock.PgxPoolIface) {
	mock.ExpectExec("SELECT pg_advisory_lock").
		WithArgs(lockKey).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
}

func expectUnlock(mock pgxmock.PgxPoolIface) {
	mock.ExpectExec("SELECT pg_advisory_unlock").
		WithArgs(lockKey).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
}

func TestRun_FreshDB(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	names := migrationFileNames(t)
	require.NotEmpty(t, names)

	expectLock(mock)
	mock.ExpectExec("CREATE SCHEMA IF NOT EXISTS").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT filename FROM ple.schema_migrations").
		WillReturnRows(pgxmock.NewRows([]string{"filename"}))

	for _, name := range names {
		mock.ExpectExec(".*").WillReturnResult(pgxmock.NewResult("EXEC", 0))
		mock.ExpectExec("INSERT INTO ple.schema_migrations").
			WithArgs(name).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	expectUnlock(mock)

	err = Run(context.Background(), mock)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_AllAlreadyApplied(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	expectLock(mock)
	mock.ExpectExec("CREATE SCHEMA IF NOT EXISTS").WillReturnResult(pgxmock.NewResult("CREATE", 0))

	appliedRows := pgxmock.NewRows([]string{"filename"})
	for _, name := range migrationFileNames(t) {
		appliedRows.AddRow(name)
	}
	mock.ExpectQuery("SELECT filename FROM ple.schema_migrations").WillReturnRows(appliedRows)
	expectUnlock(mock)

	err = Run(context.Background(), mock)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_ApplyError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	expectLock(mock)
	mock.ExpectExec("CREATE SCHEMA IF NOT EXISTS").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT filename FROM ple.schema_migrations").
		WillReturnRows(pgxmock.NewRows([]string{"filename"}))
	mock.ExpectExec(".*").WillReturnError(fmt.Errorf("syntax error"))
	expectUnlock(mock)

	err = Run(context.Background(), mock)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_LockError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("SELECT pg_advisory_lock").
		WithArgs(lockKey).
		WillReturnError(fmt.Errorf("could not obtain lock"))

	err = Run(context.Background(), mock)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquire advisory lock")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppliedMigrations(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"filename"}).
		AddRow("0001_init.sql").
		AddRow("0002_filings.sql")
	mock.ExpectQuery("SELECT filename FROM ple.schema_migrations").WillReturnRows(rows)

	applied, err := appliedMigrations(context.Background(), mock)
	require.NoError(t, err)
	assert.True(t, applied["0001_init.sql"])
	assert.True(t, applied["0002_filings.sql"])
	assert.False(t, applied["0003_staging.sql"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
