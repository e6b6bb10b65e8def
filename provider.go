package postgen

import "context"

// TextGenerator produces text from a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, opts *TextOptions) (string, error)
}

// ImageGenerator produces an image from a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, opts *ImageOptions) (*Image, error)
}
