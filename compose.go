package postgen

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

var ErrNoImageGenerator = errors.New("postgen: no image generator configured")

// ComposeOptions control Composer.Compose.
type ComposeOptions struct {
	HashtagCount int
	AspectRatio  string
	WithImage    bool
}

// Composer builds a complete Post from the template operations and, optionally, an image.
type Composer struct {
	engine *Engine
	images ImageGenerator
}

// NewComposer creates a Composer. images may be nil when no image will be requested.
func NewComposer(engine *Engine, images ImageGenerator) *Composer {
	return &Composer{engine: engine, images: images}
}

// Compose runs caption, hashtags and image prompt concurrently, then generates
// the image from the produced prompt when opts.WithImage is set. The first
// failure is returned as-is.
func (c *Composer) Compose(ctx context.Context, avatar Avatar, topic string, opts ComposeOptions) (*Post, error) {
	post := &Post{}
	var hashtags string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		post.Caption, err = c.engine.Caption(gctx, avatar, topic)
		return err
	})
	g.Go(func() error {
		var err error
		hashtags, err = c.engine.Hashtags(gctx, avatar.Niche, topic, opts.HashtagCount)
		return err
	})
	g.Go(func() error {
		var err error
		post.ImagePrompt, err = c.engine.ImagePrompt(gctx, avatar, topic)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	post.Hashtags = ParseHashtags(hashtags)

	if !opts.WithImage {
		return post, nil
	}
	if c.images == nil {
		return nil, ErrNoImageGenerator
	}
	img, err := c.images.GenerateImage(ctx, post.ImagePrompt, &ImageOptions{AspectRatio: opts.AspectRatio})
	if err != nil {
		return nil, err
	}
	post.Image = img
	return post, nil
}
