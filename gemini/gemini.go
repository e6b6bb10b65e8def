package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/meikuraledutech/postgen"
)

const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	DefaultTextModel  = "gemini-2.0-flash"
	DefaultImageModel = "imagen-3.0-generate-002"
)

// Client implements postgen.TextGenerator and postgen.ImageGenerator using the Gemini REST API.
// It holds no mutable state; the API key is resolved on every call.
type Client struct {
	config     postgen.ConfigProvider
	baseURL    string
	textModel  string
	imageModel string
	client     *http.Client
}

// New creates a new Client that resolves its API key through config.
func New(config postgen.ConfigProvider) *Client {
	return &Client{
		config:     config,
		baseURL:    DefaultBaseURL,
		textModel:  DefaultTextModel,
		imageModel: DefaultImageModel,
		client:     &http.Client{},
	}
}

// WithBaseURL points the client at a different API root.
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
	return c
}

// WithModels overrides the text and image model IDs. Empty values keep the current model.
func (c *Client) WithModels(text, image string) *Client {
	if text != "" {
		c.textModel = text
	}
	if image != "" {
		c.imageModel = image
	}
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.client = hc
	}
	return c
}

// GenerateText calls the generateContent endpoint. A response without text
// yields an empty string, not an error.
func (c *Client) GenerateText(ctx context.Context, prompt string, opts *postgen.TextOptions) (string, error) {
	o := opts.Resolve()
	reqBody := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature":     o.Temperature,
			"maxOutputTokens": o.MaxTokens,
		},
	}

	tree, err := c.post(ctx, c.textModel, "generateContent", reqBody)
	if err != nil {
		return "", err
	}

	return postgen.ExtractString(tree, "", "candidates", 0, "content", "parts", 0, "text"), nil
}

// post resolves the API key, sends body to {base}/models/{model}:{method} and
// returns the decoded response tree. Non-success statuses become classified errors.
func (c *Client) post(ctx context.Context, model, method string, body any) (any, error) {
	key, ok := c.config.Get(postgen.APIKeyName)
	if !ok || key == "" {
		return nil, postgen.ConfigurationMissing()
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("postgen: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:%s?key=%s", c.baseURL, model, method, url.QueryEscape(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("postgen: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	tree := decode(respBody)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, postgen.ProviderError(resp.StatusCode, postgen.ExtractString(tree, "", "error", "message"))
	}

	return tree, nil
}

// decode parses body into a generic tree. Undecodable bodies yield nil, which
// every extraction treats as missing.
func decode(body []byte) any {
	var tree any
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil
	}
	return tree
}

// transportError classifies failures that happen before a status is available.
// The request URL carries the API key, so only the innermost cause is kept.
func transportError(err error) *postgen.Error {
	var ue *url.Error
	if errors.As(err, &ue) {
		err = ue.Err
	}
	return &postgen.Error{
		Kind:    postgen.KindProviderError,
		Message: fmt.Sprintf("postgen: send request: %v", err),
		Err:     err,
	}
}

// Ensure Client implements the generator contracts at compile time.
var (
	_ postgen.TextGenerator  = (*Client)(nil)
	_ postgen.ImageGenerator = (*Client)(nil)
)
