package postgen

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTree(t *testing.T, s string) any {
	t.Helper()
	var tree any
	require.NoError(t, json.Unmarshal([]byte(s), &tree))
	return tree
}

func TestExtractString(t *testing.T) {
	path := []any{"candidates", 0, "content", "parts", 0, "text"}

	tests := []struct {
		name string
		body string
		want string
	}{
		{"full path", `{"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}`, "hello"},
		{"empty object", `{}`, "def"},
		{"no candidates", `{"usageMetadata":{}}`, "def"},
		{"empty candidates", `{"candidates":[]}`, "def"},
		{"null candidates", `{"candidates":null}`, "def"},
		{"no content", `{"candidates":[{"finishReason":"SAFETY"}]}`, "def"},
		{"no parts", `{"candidates":[{"content":{}}]}`, "def"},
		{"empty parts", `{"candidates":[{"content":{"parts":[]}}]}`, "def"},
		{"no text", `{"candidates":[{"content":{"parts":[{"inlineData":{}}]}}]}`, "def"},
		{"text not a string", `{"candidates":[{"content":{"parts":[{"text":42}]}}]}`, "def"},
		{"candidates wrong shape", `{"candidates":{"0":{}}}`, "def"},
		{"top level array", `[1,2,3]`, "def"},
		{"empty text kept", `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := decodeTree(t, tt.body)
			assert.Equal(t, tt.want, ExtractString(tree, "def", path...))
		})
	}
}

func TestExtract_NilTreeAndBadSteps(t *testing.T) {
	_, ok := Extract(nil, "a")
	assert.False(t, ok)

	tree := decodeTree(t, `{"a":[{"b":1}]}`)

	_, ok = Extract(tree, "a", -1)
	assert.False(t, ok)

	_, ok = Extract(tree, "a", 1)
	assert.False(t, ok)

	_, ok = Extract(tree, "a", 0.5)
	assert.False(t, ok, "unsupported step types are treated as missing")

	v, ok := Extract(tree, "a", 0, "b")
	require.True(t, ok)
	assert.Equal(t, float64(1), v)
}
