package gemini

import (
	"context"

	"github.com/meikuraledutech/postgen"
)

// GenerateImage calls the predict endpoint for a single sample. A successful
// response without image bytes is an EmptyResult error.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts *postgen.ImageOptions) (*postgen.Image, error) {
	o := opts.Resolve()
	reqBody := map[string]any{
		"instances": []map[string]any{
			{"prompt": prompt},
		},
		"parameters": map[string]any{
			"sampleCount": 1,
			"aspectRatio": o.AspectRatio,
		},
	}

	tree, err := c.post(ctx, c.imageModel, "predict", reqBody)
	if err != nil {
		return nil, err
	}

	data := postgen.ExtractString(tree, "", "predictions", 0, "bytesBase64Encoded")
	if data == "" {
		return nil, postgen.EmptyResult(postgen.MsgNoImage)
	}

	mime := postgen.ExtractString(tree, "", "predictions", 0, "mimeType")
	if mime == "" {
		mime = postgen.DefaultMIMEType
	}

	return &postgen.Image{MIMEType: mime, Data: data}, nil
}
