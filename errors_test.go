package postgen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := ProviderError(503, "overloaded")

	assert.True(t, errors.Is(err, ErrProviderError))
	assert.False(t, errors.Is(err, ErrConfigurationMissing))
	assert.False(t, errors.Is(err, ErrEmptyResult))

	wrapped := fmt.Errorf("caption: %w", err)
	assert.True(t, errors.Is(wrapped, ErrProviderError))
	assert.Equal(t, KindProviderError, KindOf(wrapped))
}

func TestProviderError_Message(t *testing.T) {
	assert.Equal(t, "API key not valid", ProviderError(400, "API key not valid").Error())

	err := ProviderError(500, "")
	assert.Equal(t, "Erro 500", err.Error())
	assert.Equal(t, 500, err.Status)
}

func TestConfigurationMissing(t *testing.T) {
	err := ConfigurationMissing()
	assert.Equal(t, KindConfigurationMissing, err.Kind)
	assert.Contains(t, err.Error(), "not configured")
	assert.True(t, errors.Is(err, ErrConfigurationMissing))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindEmptyResult, KindOf(EmptyResult(MsgNoImage)))
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, "empty_result", KindEmptyResult.String())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Kind: KindProviderError, Message: "send", Err: cause}
	assert.ErrorIs(t, err, cause)
}
