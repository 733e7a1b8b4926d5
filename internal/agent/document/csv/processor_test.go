package csv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/document-qa/internal/models"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"simple", "name,age\nalice,30\nbob,41\n", "name,age\nalice,30\nbob,41"},
		{"quoted cells", "city,note\n\"Paris\",\"big, old\"\n", "city,note\nParis,big, old"},
		{"ragged rows", "a,b,c\nd\n", "a,b,c\nd"},
		{"crlf", "x,y\r\n1,2\r\n", "x,y\n1,2"},
	}

	p := NewProcessor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Extract(context.Background(), []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractBareQuoteFails(t *testing.T) {
	got, err := NewProcessor().Extract(context.Background(), []byte("a,b\nc,d\"e\n"))
	assert.Empty(t, got)

	var extractErr *models.ExtractionFailedError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, models.CSV, extractErr.Format)
}
