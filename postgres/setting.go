package postgres

import (
	"context"
	"fmt"

	"github.com/meikuraledutech/postgen"
)

// SetSetting creates or replaces a named setting.
func (s *PGStore) SetSetting(ctx context.Context, name, value string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO postgen_settings (name, value)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		name, value,
	)
	if err != nil {
		return fmt.Errorf("postgen: set setting %s: %w", name, err)
	}
	return nil
}

// DeleteSetting removes a named setting. Missing settings are not an error.
func (s *PGStore) DeleteSetting(ctx context.Context, name string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM postgen_settings WHERE name = $1`, name); err != nil {
		return fmt.Errorf("postgen: delete setting %s: %w", name, err)
	}
	return nil
}

// LoadSettings returns a snapshot of all settings, usable as a postgen.ConfigProvider.
func (s *PGStore) LoadSettings(ctx context.Context) (postgen.MapConfig, error) {
	rows, err := s.db.Query(ctx, `SELECT name, value FROM postgen_settings`)
	if err != nil {
		return nil, fmt.Errorf("postgen: load settings: %w", err)
	}
	defer rows.Close()

	settings := make(postgen.MapConfig)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("postgen: scan setting: %w", err)
		}
		settings[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgen: load settings: %w", err)
	}

	return settings, nil
}
