package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/meikuraledutech/postgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// provider is a fake Gemini endpoint that records request bodies.
type provider struct {
	mu       sync.Mutex
	requests []map[string]any
}

func (p *provider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

func (p *provider) last() map[string]any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests[len(p.requests)-1]
}

func startProvider(t *testing.T, text string) *provider {
	t.Helper()
	p := &provider{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		p.mu.Lock()
		p.requests = append(p.requests, body)
		p.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, ":predict") {
			_, _ = io.WriteString(w, `{"predictions":[{"mimeType":"image/jpeg","bytesBase64Encoded":"AAAA"}]}`)
			return
		}
		resp, _ := json.Marshal(map[string]any{
			"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}}},
		})
		_, _ = w.Write(resp)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("GEMINI_BASE_URL", srv.URL)
	t.Setenv(postgen.APIKeyName, "test-key")
	t.Setenv("DATABASE_URL", "")
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "postgen version "+Version+"\n", out)
}

func TestCaption(t *testing.T) {
	p := startProvider(t, "Bora treinar cedo!")

	out, err := run(t, "caption", "--name", "Ana", "--niche", "fitness", "morning routine")
	require.NoError(t, err)
	assert.Equal(t, "Bora treinar cedo!\n", out)

	require.Equal(t, 1, p.count())
	body := p.last()
	assert.Equal(t, 0.9, body["generationConfig"].(map[string]any)["temperature"])
	prompt := postgen.ExtractString(body, "", "contents", 0, "parts", 0, "text")
	assert.Equal(t, postgen.CaptionPrompt(postgen.Avatar{Name: "Ana", Niche: "fitness"}, "morning routine"), prompt)
}

func TestHashtags_JSON(t *testing.T) {
	p := startProvider(t, "#fitness #treino\n#manhã")

	out, err := run(t, "-o", "json", "hashtags", "--niche", "fitness", "--count", "15", "morning routine")
	require.NoError(t, err)

	var got map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"#fitness", "#treino", "#manhã"}, got["hashtags"])

	body := p.last()
	assert.Equal(t, 0.5, body["generationConfig"].(map[string]any)["temperature"])
	prompt := postgen.ExtractString(body, "", "contents", 0, "parts", 0, "text")
	assert.Contains(t, prompt, "15")
	assert.Contains(t, prompt, "morning routine")
}

func TestImagePrompt_AvatarFile(t *testing.T) {
	p := startProvider(t, "sunrise run on the beach")

	path := filepath.Join(t.TempDir(), "ana.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nome: Ana\nnicho: fitness\nprompt_base: minimalista\n"), 0o644))

	out, err := run(t, "-o", "yaml", "image-prompt", "--avatar-file", path, "morning routine")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "sunrise run on the beach", got["image_prompt"])

	prompt := postgen.ExtractString(p.last(), "", "contents", 0, "parts", 0, "text")
	assert.Contains(t, prompt, "Ana")
	assert.Contains(t, prompt, "minimalista")
}

func TestImage_WritesFile(t *testing.T) {
	startProvider(t, "")
	path := filepath.Join(t.TempDir(), "out.jpg")

	out, err := run(t, "image", "--out", path, "a sunrise")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0}, data)
}

func TestImage_DataURI(t *testing.T) {
	startProvider(t, "")

	out, err := run(t, "image", "a sunrise")
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,AAAA\n", out)
}

func TestPost(t *testing.T) {
	p := startProvider(t, "#a #b")

	out, err := run(t, "-o", "json", "post", "--niche", "fitness", "--image", "morning routine")
	require.NoError(t, err)

	var post postgen.Post
	require.NoError(t, json.Unmarshal([]byte(out), &post))
	assert.Equal(t, []string{"#a", "#b"}, post.Hashtags)
	require.NotNil(t, post.Image)
	assert.Equal(t, "image/jpeg", post.Image.MIMEType)
	assert.Equal(t, 4, p.count())
}

func TestCaption_MissingKey(t *testing.T) {
	p := startProvider(t, "unused")
	t.Setenv(postgen.APIKeyName, "")

	_, err := run(t, "caption", "--niche", "fitness", "ping")
	require.Error(t, err)
	assert.Equal(t, postgen.KindConfigurationMissing, postgen.KindOf(err))
	assert.Contains(t, err.Error(), "not configured")
	assert.Equal(t, 0, p.count())
}

func TestCaption_RequiresNiche(t *testing.T) {
	p := startProvider(t, "unused")

	_, err := run(t, "caption", "--name", "Ana", "ping")
	assert.ErrorContains(t, err, "niche is required")
	assert.Equal(t, 0, p.count())
}

func TestInvalidOutputFormat(t *testing.T) {
	startProvider(t, "unused")

	_, err := run(t, "-o", "xml", "caption", "--niche", "fitness", "ping")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestAvatarCommands_RequireDatabase(t *testing.T) {
	startProvider(t, "unused")

	_, err := run(t, "avatar", "list")
	assert.ErrorIs(t, err, errNoDatabase)

	_, err = run(t, "caption", "--avatar", "6f1c2a3e-0000-4000-8000-000000000000", "ping")
	assert.ErrorIs(t, err, errNoDatabase)
}
