package postgen

import (
	"context"
	"errors"
)

var (
	ErrAvatarNotFound = errors.New("postgen: avatar not found")
)

// Store persists avatar records and settings. Generated content is never stored.
type Store interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Avatars
	CreateAvatar(ctx context.Context, avatar Avatar) (*Avatar, error)
	GetAvatar(ctx context.Context, id string) (*Avatar, error)
	ListAvatars(ctx context.Context) ([]Avatar, error)
	DeleteAvatar(ctx context.Context, id string) error

	// Settings
	SetSetting(ctx context.Context, name, value string) error
	DeleteSetting(ctx context.Context, name string) error
	LoadSettings(ctx context.Context) (MapConfig, error)
}
