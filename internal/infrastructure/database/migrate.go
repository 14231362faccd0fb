package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver for database/sql
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is one embedded SQL file. Version is the file name without extension.
type Migration struct {
	Version string
	SQL     string
}

// Migrator applies the embedded migrations in lexical order and records them
// in schema_migrations so reruns are no-ops.
type Migrator struct {
	db         *sqlx.DB
	migrations []Migration
}

// OpenMigrator connects through lib/pq, separate from the pgx pool used at runtime.
func OpenMigrator(ctx context.Context, dsn string) (*Migrator, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrations, err := LoadMigrations(migrationFiles)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Migrator{db: db, migrations: migrations}, nil
}

// LoadMigrations reads every migrations/*.sql file of fsys sorted by name.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		migrations = append(migrations, Migration{
			Version: strings.TrimSuffix(path.Base(name), ".sql"),
			SQL:     string(body),
		})
	}
	return migrations, nil
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

// Applied returns the versions already recorded.
func (m *Migrator) Applied(ctx context.Context) (map[string]bool, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return nil, err
	}

	var versions []string
	if err := m.db.SelectContext(ctx, &versions, `SELECT version FROM schema_migrations`); err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

// Pending lists the migrations not yet applied, in order.
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	applied, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}
	return pendingMigrations(m.migrations, applied), nil
}

func pendingMigrations(all []Migration, applied map[string]bool) []Migration {
	var pending []Migration
	for _, mig := range all {
		if !applied[mig.Version] {
			pending = append(pending, mig)
		}
	}
	return pending
}

// Up applies every pending migration, each in its own transaction.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return 0, err
	}

	for i, mig := range pending {
		tx, err := m.db.BeginTxx(ctx, nil)
		if err != nil {
			return i, fmt.Errorf("failed to begin migration %s: %w", mig.Version, err)
		}
		if _, err := tx.ExecContext(ctx, mig.SQL); err != nil {
			tx.Rollback()
			return i, fmt.Errorf("migration %s failed: %w", mig.Version, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version); err != nil {
			tx.Rollback()
			return i, fmt.Errorf("failed to record migration %s: %w", mig.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return i, fmt.Errorf("failed to commit migration %s: %w", mig.Version, err)
		}
		log.Info().Str("version", mig.Version).Msg("[MIGRATE] applied")
	}

	return len(pending), nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}
