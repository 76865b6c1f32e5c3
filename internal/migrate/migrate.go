// Package migrate manages the ple and staging schemas.
package migrate

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/sells-group/ple-import/internal/db"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// lockKey serializes migration runs across processes.
const lockKey = 550031

// Run applies all pending SQL migrations in lexicographic order. It
// creates the ple schema and its tracking table if needed, then
// applies any .sql files not yet recorded.
func Run(ctx context.Context, pool db.Pool) error {
	log := zap.L().With(zap.String("component", "migrate"))

	// Advisory lock prevents concurrent runs from overlapping deploys.
	if _, err := pool.Exec(ctx, "SELECT pg_advisory_lock($1)", lockKey); err != nil {
		return eris.Wrap(err, "migrate: acquire advisory lock")
	}
	defer func() {
		if _, err := pool.Exec(ctx, "SELECT pg_advisory_unlock($1)", lockKey); err != nil {
			log.Warn("failed to release migration advisory lock", zap.Error(err))
		}
	}()

	if err := ensureMigrationTable(ctx, pool); err != nil {
		return err
	}

	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return eris.Wrap(err, "migrate: read migration dir")
	}

	// Zero-padded filenames make lexicographic order the apply order.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	applied, err := appliedMigrations(ctx, pool)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if applied[name] {
			continue
		}

		data, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return eris.Wrapf(err, "migrate: read migration %s", name)
		}

		log.Info("applying migration", zap.String("file", name))

		if _, err := pool.Exec(ctx, string(data)); err != nil {
			return eris.Wrapf(err, "migrate: apply %s", name)
		}

		if _, err := pool.Exec(ctx,
			"INSERT INTO ple.schema_migrations (filename, applied_at) VALUES ($1, now())",
			name,
		); err != nil {
			return eris.Wrapf(err, "migrate: record %s", name)
		}

		log.Info("migration applied", zap.String("file", name))
	}

	return nil
}

func ensureMigrationTable(ctx context.Context, pool db.Pool) error {
	sql := `
		CREATE SCHEMA IF NOT EXISTS ple;
		CREATE TABLE IF NOT EXISTS ple.schema_migrations (
			id         SERIAL PRIMARY KEY,
			filename   TEXT NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	if _, err := pool.Exec(ctx, sql); err != nil {
		return eris.Wrap(err, "migrate: ensure tracking table")
	}
	return nil
}

func appliedMigrations(ctx context.Context, pool db.Pool) (map[string]bool, error) {
	rows, err := pool.Query(ctx, "SELECT filename FROM ple.schema_migrations")
	if err != nil {
		return nil, eris.Wrap(err, "migrate: query applied migrations")
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "migrate: scan migration row")
		}
		applied[name] = true
	}
	return applied, rows.Err()
}
