package docx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/document-qa/internal/models"
	"github.com/feichai0017/document-qa/internal/testutil"
	"github.com/feichai0017/document-qa/pkg/logger"
)

func TestExtractParagraphsInOrder(t *testing.T) {
	p := NewProcessor(logger.NewTestLogger())

	text, err := p.Extract(context.Background(), testutil.DOCX("First paragraph", "Second & last"))
	require.NoError(t, err)
	assert.Equal(t, "First paragraph\nSecond & last", text)
}

func TestExtractTabsAndTables(t *testing.T) {
	document := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>Name</w:t></w:r><w:r><w:tab/><w:t>Value</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`<w:p><w:r><w:t>line</w:t><w:br/><w:t>break</w:t><w:delText>gone</w:delText></w:r></w:p>` +
		`</w:body></w:document>`
	content := testutil.Zip(map[string]string{"word/document.xml": document})

	text, err := NewProcessor(logger.NewTestLogger()).Extract(context.Background(), content)
	require.NoError(t, err)
	assert.Equal(t, "Name\tValue\ncell\nline\nbreak", text)
}

func TestExtractFailures(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"not a zip", []byte("plain bytes")},
		{"missing main part", testutil.Zip(map[string]string{"word/styles.xml": "<styles/>"})},
		{"broken xml", testutil.Zip(map[string]string{"word/document.xml": "<w:document><w:body>"})},
		{"no body", testutil.Zip(map[string]string{"word/document.xml": "<document/>"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := NewProcessor(logger.NewTestLogger()).Extract(context.Background(), tt.content)
			require.Error(t, err)
			assert.Empty(t, text)

			var extractErr *models.ExtractionFailedError
			require.True(t, errors.As(err, &extractErr))
			assert.Equal(t, models.DOCX, extractErr.Format)
		})
	}
}
