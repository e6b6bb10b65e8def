package postgres

import "context"

// CreateSchema applies all pending migrations.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	return s.Migrate(ctx)
}

// DropSchema drops all postgen tables and the migrations tracking table.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		DROP TABLE IF EXISTS postgen_migrations CASCADE;
		DROP TABLE IF EXISTS postgen_settings CASCADE;
		DROP TABLE IF EXISTS postgen_avatars CASCADE;
	`)
	return err
}
