package jsondoc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/document-qa/internal/models"
)

func TestExtractRendersStructure(t *testing.T) {
	content := `{"title": "Quarterly report", "year": 2024, "tags": ["finance", "q3"], "owner": {"name": "Ana"}}`

	got, err := NewProcessor().Extract(context.Background(), []byte(content))
	require.NoError(t, err)
	assert.Equal(t, "title: Quarterly report\nyear: 2024\ntags:\n  - finance\n  - q3\nowner:\n  name: Ana", got)
}

func TestExtractKeepsStringsThatLookTyped(t *testing.T) {
	got, err := NewProcessor().Extract(context.Background(), []byte(`{"count": "42", "flag": "true"}`))
	require.NoError(t, err)
	assert.Contains(t, got, `count: "42"`)
	assert.Contains(t, got, `flag: "true"`)
}

func TestExtractScalarsAndArrays(t *testing.T) {
	got, err := NewProcessor().Extract(context.Background(), []byte(`["a", 1, null]`))
	require.NoError(t, err)
	assert.Equal(t, "- a\n- 1\n- null", got)
}

func TestExtractInvalidJSON(t *testing.T) {
	for _, content := range []string{`{"a": }`, `a: b`, ``} {
		got, err := NewProcessor().Extract(context.Background(), []byte(content))
		assert.Empty(t, got)

		var extractErr *models.ExtractionFailedError
		require.True(t, errors.As(err, &extractErr), "content %q", content)
		assert.Equal(t, models.JSON, extractErr.Format)
	}
}

func TestExtractDecodesJSONEscapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"escaped solidus", `{"url":"http:\/\/a.com\/b"}`, "url: http://a.com/b"},
		{"surrogate pair", `{"e":"\ud83d\ude00"}`, "e: 😀"},
		{"bmp escape", `{"e":"caf\u00e9"}`, "e: café"},
		{"escaped quote", `{"q":"say \"hi\""}`, `q: say "hi"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewProcessor().Extract(context.Background(), []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractWritesWideRunesVerbatim(t *testing.T) {
	got, err := NewProcessor().Extract(context.Background(), []byte(`{"e":"café 😀", "😀 key": ["𝄞"]}`))
	require.NoError(t, err)
	assert.Equal(t, "e: café 😀\n😀 key:\n  - 𝄞", got)
	assert.NotContains(t, got, `\U`)
}

func TestExtractKeepsPrivateUseRunes(t *testing.T) {
	got, err := NewProcessor().Extract(context.Background(), []byte("{\"a\":\"\ue000\",\"b\":\"\U0001F600\"}"))
	require.NoError(t, err)
	assert.Equal(t, "a: \ue000\nb: \U0001F600", got)
}

func TestExtractKeepsKeyOrderAndNumbers(t *testing.T) {
	got, err := NewProcessor().Extract(context.Background(), []byte(`{"z": 1.50, "a": -3, "m": 12345678901234567890, "t": true, "n": null, "s": ""}`))
	require.NoError(t, err)
	assert.Equal(t, "z: 1.50\na: -3\nm: 12345678901234567890\nt: true\nn: null\ns: \"\"", got)
}
