package postgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvConfig(t *testing.T) {
	t.Setenv(APIKeyName, "secret")
	v, ok := EnvConfig{}.Get(APIKeyName)
	assert.True(t, ok)
	assert.Equal(t, "secret", v)

	t.Setenv(APIKeyName, "  ")
	_, ok = EnvConfig{}.Get(APIKeyName)
	assert.False(t, ok, "blank values count as absent")
}

func TestConfigChain(t *testing.T) {
	chain := ConfigChain{
		MapConfig{"A": "", "B": "first"},
		nil,
		MapConfig{"A": "second", "B": "ignored"},
	}

	v, ok := chain.Get("A")
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	v, ok = chain.Get("B")
	assert.True(t, ok)
	assert.Equal(t, "first", v)

	_, ok = chain.Get("C")
	assert.False(t, ok)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/postgen")
	t.Setenv("TEXT_MODEL_ID", "gemini-test")
	t.Setenv("MAX_TOKENS", "")

	cfg := LoadConfig()
	assert.Equal(t, "postgres://localhost/postgen", cfg.DatabaseURL)
	assert.Equal(t, "gemini-test", cfg.TextModel)
	assert.Equal(t, DefaultMaxTokens, cfg.MaxTokens)

	t.Setenv("MAX_TOKENS", "2048")
	assert.Equal(t, 2048, LoadConfig().MaxTokens)

	t.Setenv("MAX_TOKENS", "-5")
	assert.Equal(t, DefaultMaxTokens, LoadConfig().MaxTokens)
}
