package text

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/feichai0017/document-qa/internal/agent/document"
	"github.com/feichai0017/document-qa/internal/models"
)

var errNotUTF8 = errors.New("content is not valid UTF-8")

// Processor decodes plain text. A UTF-8 or UTF-16 byte-order mark selects
// the decoding; without one the bytes must already be UTF-8.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

func (p *Processor) Format() models.FileType {
	return models.Text
}

func (p *Processor) Extract(ctx context.Context, content []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), content)
	if err != nil {
		return "", document.Fail(models.Text, err)
	}
	if !utf8.Valid(decoded) {
		return "", document.Fail(models.Text, errNotUTF8)
	}
	return strings.TrimSpace(string(decoded)), nil
}
