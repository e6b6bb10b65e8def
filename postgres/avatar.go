package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meikuraledutech/postgen"
)

// CreateAvatar stores a new avatar and returns it with its ID and creation time.
func (s *PGStore) CreateAvatar(ctx context.Context, avatar postgen.Avatar) (*postgen.Avatar, error) {
	if strings.TrimSpace(avatar.Name) == "" || strings.TrimSpace(avatar.Niche) == "" {
		return nil, fmt.Errorf("postgen: create avatar: name and niche are required")
	}

	a := avatar
	a.ID = uuid.New().String()

	err := s.db.QueryRow(ctx,
		`INSERT INTO postgen_avatars (id, name, niche, base_style)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		a.ID, a.Name, a.Niche, a.BaseStyle,
	).Scan(&a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("postgen: create avatar: %w", err)
	}

	return &a, nil
}

// GetAvatar retrieves an avatar by ID.
func (s *PGStore) GetAvatar(ctx context.Context, id string) (*postgen.Avatar, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, postgen.ErrAvatarNotFound
	}

	a := &postgen.Avatar{ID: id}
	err := s.db.QueryRow(ctx,
		`SELECT name, niche, base_style, created_at
		 FROM postgen_avatars WHERE id = $1`,
		id,
	).Scan(&a.Name, &a.Niche, &a.BaseStyle, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, postgen.ErrAvatarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgen: get avatar: %w", err)
	}

	return a, nil
}

// ListAvatars returns all avatars, oldest first.
func (s *PGStore) ListAvatars(ctx context.Context) ([]postgen.Avatar, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, niche, base_style, created_at
		 FROM postgen_avatars ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("postgen: list avatars: %w", err)
	}
	defer rows.Close()

	var avatars []postgen.Avatar
	for rows.Next() {
		var a postgen.Avatar
		if err := rows.Scan(&a.ID, &a.Name, &a.Niche, &a.BaseStyle, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgen: scan avatar: %w", err)
		}
		avatars = append(avatars, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgen: list avatars: %w", err)
	}

	return avatars, nil
}

// DeleteAvatar removes an avatar by ID.
func (s *PGStore) DeleteAvatar(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return postgen.ErrAvatarNotFound
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM postgen_avatars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgen: delete avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return postgen.ErrAvatarNotFound
	}

	return nil
}
