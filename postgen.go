package postgen

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultTemperature  = 0.8
	DefaultMaxTokens    = 1024
	DefaultAspectRatio  = "1:1"
	DefaultMIMEType     = "image/png"
	DefaultBaseStyle    = "criativo, autêntico e envolvente"
	DefaultHashtagCount = 20
)

// Avatar is a persona profile used to flavor generated content.
type Avatar struct {
	ID        string    `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string    `json:"nome" yaml:"nome"`
	Niche     string    `json:"nicho" yaml:"nicho"`
	BaseStyle string    `json:"prompt_base,omitempty" yaml:"prompt_base,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// Style returns the avatar's base style, or DefaultBaseStyle when none is set.
func (a Avatar) Style() string {
	if s := strings.TrimSpace(a.BaseStyle); s != "" {
		return s
	}
	return DefaultBaseStyle
}

// TextOptions tune a single text generation call.
type TextOptions struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// DefaultTextOptions returns TextOptions with sensible defaults.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Resolve fills unset fields with defaults. A nil receiver yields the defaults.
func (o *TextOptions) Resolve() TextOptions {
	if o == nil {
		return DefaultTextOptions()
	}
	out := *o
	if out.MaxTokens <= 0 {
		out.MaxTokens = DefaultMaxTokens
	}
	return out
}

// ImageOptions tune a single image generation call.
type ImageOptions struct {
	AspectRatio string `json:"aspect_ratio"`
}

// Resolve fills unset fields with defaults. A nil receiver yields the defaults.
func (o *ImageOptions) Resolve() ImageOptions {
	if o == nil || o.AspectRatio == "" {
		return ImageOptions{AspectRatio: DefaultAspectRatio}
	}
	return *o
}

// Image is a generated image: MIME type and base64 payload always travel together.
type Image struct {
	MIMEType string `json:"mime_type" yaml:"mime_type"`
	Data     string `json:"data" yaml:"data"`
}

// DataURI renders the image as a self-describing data URI, usable directly as an image source.
func (i Image) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", i.MIMEType, i.Data)
}

// Bytes decodes the base64 payload.
func (i Image) Bytes() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(i.Data)
	if err != nil {
		return nil, fmt.Errorf("postgen: decode image: %w", err)
	}
	return b, nil
}

// Post is the full set of content generated for one avatar and topic.
type Post struct {
	Caption     string   `json:"caption" yaml:"caption"`
	Hashtags    []string `json:"hashtags" yaml:"hashtags"`
	ImagePrompt string   `json:"image_prompt" yaml:"image_prompt"`
	Image       *Image   `json:"image,omitempty" yaml:"image,omitempty"`
}

// MigrationRecord tracks a single applied migration.
type MigrationRecord struct {
	Name      string     `json:"name" yaml:"name"`
	Applied   bool       `json:"applied" yaml:"applied"`
	AppliedAt *time.Time `json:"applied_at,omitempty" yaml:"applied_at,omitempty"`
	Checksum  string     `json:"checksum,omitempty" yaml:"checksum,omitempty"`
}
