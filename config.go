package postgen

import (
	"os"
	"strconv"
	"strings"
)

// APIKeyName is the name under which the provider API key is looked up.
const APIKeyName = "GEMINI_API_KEY"

// ConfigProvider supplies configuration values by name.
type ConfigProvider interface {
	Get(name string) (string, bool)
}

// EnvConfig reads values from environment variables. Blank values count as absent.
type EnvConfig struct{}

func (EnvConfig) Get(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	return v, v != ""
}

// MapConfig is a fixed set of values, e.g. a snapshot of stored settings.
type MapConfig map[string]string

func (m MapConfig) Get(name string) (string, bool) {
	v := strings.TrimSpace(m[name])
	return v, v != ""
}

// ConfigChain returns the first value found, in order.
type ConfigChain []ConfigProvider

func (c ConfigChain) Get(name string) (string, bool) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if v, ok := p.Get(name); ok {
			return v, true
		}
	}
	return "", false
}

// AppConfig holds application settings loaded from environment variables.
// The API key is not part of it; clients resolve it through a ConfigProvider on every call.
type AppConfig struct {
	DatabaseURL string
	BaseURL     string
	TextModel   string
	ImageModel  string
	MaxTokens   int
}

// LoadConfig loads configuration from environment variables with sensible defaults.
func LoadConfig() AppConfig {
	cfg := AppConfig{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		BaseURL:     os.Getenv("GEMINI_BASE_URL"),
		TextModel:   os.Getenv("TEXT_MODEL_ID"),
		ImageModel:  os.Getenv("IMAGE_MODEL_ID"),
		MaxTokens:   DefaultMaxTokens,
	}

	// Parse MAX_TOKENS if provided
	if mt := os.Getenv("MAX_TOKENS"); mt != "" {
		if parsed, err := strconv.Atoi(mt); err == nil && parsed > 0 {
			cfg.MaxTokens = parsed
		}
	}

	return cfg
}
