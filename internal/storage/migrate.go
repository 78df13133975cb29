package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrator applies the SQL files of a migration directory in name order.
// A file named <version>_sqlite.sql replaces <version>.sql on SQLite and
// is ignored on PostgreSQL.
type Migrator struct {
	db      *sql.DB
	dialect Dialect
	files   fs.FS
}

// MigrationStatus represents the status of migrations.
type MigrationStatus struct {
	Applied []string `json:"applied"`
	Pending []string `json:"pending"`
}

// UpToDate reports whether nothing is pending.
func (s *MigrationStatus) UpToDate() bool {
	return len(s.Pending) == 0
}

// NewMigrator creates a migrator over the embedded migrations.
func NewMigrator(db *sql.DB, dialect Dialect) *Migrator {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return &Migrator{db: db, dialect: dialect, files: sub}
}

// WithFS returns a copy of m reading migrations from files.
func (m *Migrator) WithFS(files fs.FS) *Migrator {
	cp := *m
	cp.files = files
	return &cp
}

// Status reports which migrations are applied and which are pending.
func (m *Migrator) Status(ctx context.Context) (*MigrationStatus, error) {
	if err := m.ensureSchemaMigrationsTable(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	versions, err := m.versions()
	if err != nil {
		return nil, fmt.Errorf("list migration files: %w", err)
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}

	status := &MigrationStatus{Applied: []string{}, Pending: []string{}}
	for _, v := range versions {
		if applied[v] {
			status.Applied = append(status.Applied, v)
		} else {
			status.Pending = append(status.Pending, v)
		}
	}
	return status, nil
}

// Up applies every pending migration, each in its own transaction, and
// returns the versions it applied.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	status, err := m.Status(ctx)
	if err != nil {
		return nil, err
	}

	done := make([]string, 0, len(status.Pending))
	for _, version := range status.Pending {
		if err := m.apply(ctx, version); err != nil {
			return done, fmt.Errorf("run migration %s: %w", version, err)
		}
		done = append(done, version)
	}
	return done, nil
}

func (m *Migrator) ensureSchemaMigrationsTable(ctx context.Context) error {
	var query string
	switch m.dialect {
	case DialectPostgres:
		query = `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				version TEXT PRIMARY KEY,
				applied_at TIMESTAMPTZ NOT NULL
			)
		`
	default:
		query = `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				version TEXT PRIMARY KEY,
				applied_at TIMESTAMP NOT NULL
			)
		`
	}
	_, err := m.db.ExecContext(ctx, query)
	return err
}

// versions lists the migration versions available for the dialect, sorted.
func (m *Migrator) versions() ([]string, error) {
	entries, err := fs.ReadDir(m.files, ".")
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		if base, ok := strings.CutSuffix(name, "_sqlite.sql"); ok {
			if m.dialect == DialectSQLite {
				seen[base] = true
			}
			continue
		}
		seen[strings.TrimSuffix(name, ".sql")] = true
	}

	versions := make([]string, 0, len(seen))
	for v := range seen {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions, nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// file returns the script for version, preferring the SQLite variant on
// SQLite.
func (m *Migrator) file(version string) ([]byte, error) {
	if m.dialect == DialectSQLite {
		if data, err := fs.ReadFile(m.files, version+"_sqlite.sql"); err == nil {
			return data, nil
		}
	}
	return fs.ReadFile(m.files, version+".sql")
}

func (m *Migrator) apply(ctx context.Context, version string) error {
	script, err := m.file(version)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(script)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
		version, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	return tx.Commit()
}
