package postgres

import (
	"context"
	"crypto/sha256"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/meikuraledutech/postgen"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var ErrNothingToRollback = errors.New("postgen: no applied migrations")

const createMigrationsTableSQL = `
CREATE TABLE IF NOT EXISTS postgen_migrations (
	id         SERIAL PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	checksum   TEXT NOT NULL
);`

type migrationFile struct {
	Name     string
	Up       string
	Down     string
	Checksum string
}

type migrationRecord struct {
	ID        int
	Name      string
	AppliedAt time.Time
	Checksum  string
}

// loadMigrations reads *.up.sql / *.down.sql pairs from dir in fsys, sorted by name.
// An up file without a down file is allowed; a down file without an up file is not.
func loadMigrations(fsys fs.FS, dir string) ([]migrationFile, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	upFiles := make(map[string]string)
	downFiles := make(map[string]string)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		data, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}

		switch {
		case strings.HasSuffix(name, ".up.sql"):
			upFiles[strings.TrimSuffix(name, ".up.sql")] = string(data)
		case strings.HasSuffix(name, ".down.sql"):
			downFiles[strings.TrimSuffix(name, ".down.sql")] = string(data)
		}
	}

	for key := range downFiles {
		if _, ok := upFiles[key]; !ok {
			return nil, fmt.Errorf("migration %s has a down file but no up file", key)
		}
	}

	migrations := make([]migrationFile, 0, len(upFiles))
	for key, up := range upFiles {
		migrations = append(migrations, migrationFile{
			Name:     key,
			Up:       up,
			Down:     downFiles[key],
			Checksum: fmt.Sprintf("%x", sha256.Sum256([]byte(up))),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Name < migrations[j].Name
	})

	return migrations, nil
}

func embeddedMigrations() ([]migrationFile, error) {
	return loadMigrations(migrationsFS, "migrations")
}

// pending returns the migrations not yet in applied, failing on checksum drift.
func pending(migrations []migrationFile, applied map[string]migrationRecord) ([]migrationFile, error) {
	var out []migrationFile
	for _, m := range migrations {
		rec, ok := applied[m.Name]
		if !ok {
			out = append(out, m)
			continue
		}
		if rec.Checksum != m.Checksum {
			return nil, fmt.Errorf("postgen: migration %s checksum mismatch (expected %s, got %s)", m.Name, rec.Checksum, m.Checksum)
		}
	}
	return out, nil
}

func (s *PGStore) ensureMigrationsTable(ctx context.Context) error {
	_, err := s.db.Exec(ctx, createMigrationsTableSQL)
	return err
}

func (s *PGStore) appliedMigrations(ctx context.Context) (map[string]migrationRecord, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, applied_at, checksum FROM postgen_migrations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]migrationRecord)
	for rows.Next() {
		var rec migrationRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.AppliedAt, &rec.Checksum); err != nil {
			return nil, err
		}
		applied[rec.Name] = rec
	}

	return applied, rows.Err()
}

// Migrate applies all pending migrations in order, each in its own transaction.
func (s *PGStore) Migrate(ctx context.Context) error {
	if err := s.ensureMigrationsTable(ctx); err != nil {
		return fmt.Errorf("postgen: ensure migrations table: %w", err)
	}

	migrations, err := embeddedMigrations()
	if err != nil {
		return fmt.Errorf("postgen: load migrations: %w", err)
	}

	applied, err := s.appliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("postgen: get applied migrations: %w", err)
	}

	todo, err := pending(migrations, applied)
	if err != nil {
		return err
	}

	for _, m := range todo {
		err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.Up); err != nil {
				return fmt.Errorf("run: %w", err)
			}
			if _, err := tx.Exec(ctx, `INSERT INTO postgen_migrations (name, checksum) VALUES ($1, $2)`, m.Name, m.Checksum); err != nil {
				return fmt.Errorf("record: %w", err)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("postgen: migration %s: %w", m.Name, err)
		}
	}

	return nil
}

// Rollback rolls back the last applied migration.
func (s *PGStore) Rollback(ctx context.Context) error {
	if err := s.ensureMigrationsTable(ctx); err != nil {
		return fmt.Errorf("postgen: ensure migrations table: %w", err)
	}

	var last migrationRecord
	err := s.db.QueryRow(ctx, `SELECT id, name FROM postgen_migrations ORDER BY id DESC LIMIT 1`).
		Scan(&last.ID, &last.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNothingToRollback
	}
	if err != nil {
		return fmt.Errorf("postgen: get last migration: %w", err)
	}

	migrations, err := embeddedMigrations()
	if err != nil {
		return fmt.Errorf("postgen: load migrations: %w", err)
	}

	var downSQL string
	for _, m := range migrations {
		if m.Name == last.Name {
			downSQL = m.Down
			break
		}
	}
	if downSQL == "" {
		return fmt.Errorf("postgen: no down migration for %s", last.Name)
	}

	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, downSQL); err != nil {
			return fmt.Errorf("run: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM postgen_migrations WHERE id = $1`, last.ID); err != nil {
			return fmt.Errorf("remove record: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("postgen: rollback %s: %w", last.Name, err)
	}

	return nil
}

// MigrationStatus returns all known migrations with their applied status.
func (s *PGStore) MigrationStatus(ctx context.Context) ([]postgen.MigrationRecord, error) {
	if err := s.ensureMigrationsTable(ctx); err != nil {
		return nil, fmt.Errorf("postgen: ensure migrations table: %w", err)
	}

	migrations, err := embeddedMigrations()
	if err != nil {
		return nil, fmt.Errorf("postgen: load migrations: %w", err)
	}

	applied, err := s.appliedMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgen: get applied migrations: %w", err)
	}

	records := make([]postgen.MigrationRecord, 0, len(migrations))
	for _, m := range migrations {
		rec := postgen.MigrationRecord{Name: m.Name}
		if a, ok := applied[m.Name]; ok {
			t := a.AppliedAt
			rec.Applied = true
			rec.AppliedAt = &t
			rec.Checksum = a.Checksum
		}
		records = append(records, rec)
	}

	return records, nil
}
