package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
)

// embedded holds the schema files for the postgres driver, named
// YYYY-MM-DD-NNN-description.sql and applied in name order.
//
//go:embed migrations/*.sql
var embedded embed.FS

var migrationPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d{3}-`)

// Migration is one schema file.
type Migration struct {
	Name        string
	Description string
	SQL         string
}

// EmbeddedMigrations returns the migrations compiled into the binary.
func EmbeddedMigrations() ([]Migration, error) {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		return nil, err
	}
	return LoadMigrations(sub)
}

// LoadMigrations reads every .sql file at the root of fsys, sorted by name.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		out = append(out, Migration{Name: name, Description: describeMigration(name), SQL: string(b)})
	}
	return out, nil
}

// describeMigration strips the date prefix and .sql suffix:
// "2026-10-01-002-create-documents.sql" → "create documents".
func describeMigration(name string) string {
	name = strings.TrimSuffix(path.Base(name), ".sql")
	name = migrationPrefix.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, "-", " ")
}

// Migrate applies the migrations not yet recorded in the migrations table and
// returns the names it applied. Each file and its record commit together.
func (p *Postgres) Migrate(ctx context.Context, migrations []Migration) ([]string, error) {
	applied, err := p.appliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	var ran []string
	for _, m := range migrations {
		if applied[m.Name] {
			continue
		}
		err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO migrations (migration, description) VALUES (@migration, @description)`,
				pgx.NamedArgs{"migration": m.Name, "description": m.Description})
			return err
		})
		if err != nil {
			return ran, fmt.Errorf("postgres: migrate %s: %w", m.Name, err)
		}
		ran = append(ran, m.Name)
	}
	return ran, nil
}

// appliedMigrations returns the recorded migration names. A missing
// migrations table means nothing has been applied yet.
func (p *Postgres) appliedMigrations(ctx context.Context) (map[string]bool, error) {
	var exists bool
	if err := p.pool.QueryRow(ctx, `SELECT to_regclass('migrations') IS NOT NULL`).Scan(&exists); err != nil {
		return nil, fmt.Errorf("postgres: check migrations table: %w", err)
	}
	applied := map[string]bool{}
	if !exists {
		return applied, nil
	}

	rows, err := p.pool.Query(ctx, `SELECT migration FROM migrations`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list migrations: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postgres: list migrations: %w", err)
	}
	for _, n := range names {
		applied[n] = true
	}
	return applied, nil
}
