package converters

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/feichai0017/document-qa/internal/models"
)

// PositionKey is the chunk metadata key holding a chunk's 1-based position.
const PositionKey = "position"

// DocumentConverter 定义文档转换器接口
type DocumentConverter interface {
	Convert(chunks []models.DocumentChunk) string
}

// TextConverter joins extracted chunks back into one plain-text string.
type TextConverter struct {
	Separator string
}

func NewTextConverter(separator string) *TextConverter {
	return &TextConverter{Separator: separator}
}

// Convert concatenates chunk contents ordered by their position metadata.
// Chunks without a position keep their relative order after positioned ones.
func (c *TextConverter) Convert(chunks []models.DocumentChunk) string {
	if len(chunks) == 0 {
		return ""
	}

	ordered := make([]models.DocumentChunk, len(chunks))
	copy(ordered, chunks)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, iok := position(ordered[i])
		pj, jok := position(ordered[j])
		switch {
		case iok && jok:
			return pi < pj
		case iok:
			return true
		default:
			return false
		}
	})

	parts := make([]string, len(ordered))
	for i, chunk := range ordered {
		parts[i] = chunk.Content
	}
	return strings.Join(parts, c.Separator)
}

func position(chunk models.DocumentChunk) (int, bool) {
	if chunk.Metadata == nil {
		return 0, false
	}
	p, ok := chunk.Metadata[PositionKey].(int)
	return p, ok
}

// Truncate returns the first max characters of text and whether anything was cut.
func Truncate(text string, max int) (string, bool) {
	if max < 0 || utf8.RuneCountInString(text) <= max {
		return text, false
	}
	n := 0
	for i := range text {
		if n == max {
			return text[:i], true
		}
		n++
	}
	return text, false
}
