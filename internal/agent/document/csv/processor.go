package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/feichai0017/document-qa/internal/agent/document"
	"github.com/feichai0017/document-qa/internal/models"
	"github.com/feichai0017/document-qa/pkg/converters"
)

// Processor renders CSV rows as lines of comma-separated cells.
type Processor struct {
	comma     rune
	converter *converters.TextConverter
}

func NewProcessor() *Processor {
	return &Processor{
		comma:     ',',
		converter: converters.NewTextConverter("\n"),
	}
}

func (p *Processor) Format() models.FileType {
	return models.CSV
}

func (p *Processor) Extract(ctx context.Context, content []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = p.comma
	r.FieldsPerRecord = -1

	var chunks []models.DocumentChunk
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", document.Fail(models.CSV, err)
		}
		chunks = append(chunks, models.DocumentChunk{
			Content: strings.Join(record, string(p.comma)),
			Metadata: map[string]interface{}{
				converters.PositionKey: len(chunks) + 1,
			},
		})
	}

	return strings.TrimSpace(p.converter.Convert(chunks)), nil
}
