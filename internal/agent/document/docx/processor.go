package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/feichai0017/document-qa/internal/agent/document"
	"github.com/feichai0017/document-qa/internal/models"
	"github.com/feichai0017/document-qa/pkg/converters"
	"github.com/feichai0017/document-qa/pkg/logger"
)

const mainPart = "word/document.xml"

var errNoBody = errors.New("document body not found")

// Processor extracts body text from Office Open XML word-processing files.
type Processor struct {
	logger    logger.Logger
	converter *converters.TextConverter
}

func NewProcessor(logger logger.Logger) *Processor {
	return &Processor{
		logger:    logger,
		converter: converters.NewTextConverter("\n"),
	}
}

func (p *Processor) Format() models.FileType {
	return models.DOCX
}

func (p *Processor) Extract(ctx context.Context, content []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", document.Fail(models.DOCX, err)
	}

	part, err := archive.Open(mainPart)
	if err != nil {
		return "", document.Fail(models.DOCX, fmt.Errorf("open %s: %w", mainPart, err))
	}
	defer part.Close()

	doc, err := xmlquery.Parse(part)
	if err != nil {
		return "", document.Fail(models.DOCX, fmt.Errorf("parse %s: %w", mainPart, err))
	}

	body := xmlquery.FindOne(doc, "//*[local-name()='body']")
	if body == nil {
		return "", document.Fail(models.DOCX, errNoBody)
	}

	var chunks []models.DocumentChunk
	collectParagraphs(body, &chunks)

	p.logger.Debug("DOCX paragraphs extracted", logger.Int("paragraphs", len(chunks)))
	return strings.TrimSpace(p.converter.Convert(chunks)), nil
}

// collectParagraphs walks n in document order and appends one chunk per
// paragraph, descending through tables and content controls.
func collectParagraphs(n *xmlquery.Node, chunks *[]models.DocumentChunk) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if c.Data != "p" {
			collectParagraphs(c, chunks)
			continue
		}

		var sb strings.Builder
		collectRuns(c, &sb)
		*chunks = append(*chunks, models.DocumentChunk{
			Content: sb.String(),
			Metadata: map[string]interface{}{
				converters.PositionKey: len(*chunks) + 1,
			},
		})
	}
}

func collectRuns(n *xmlquery.Node, sb *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		switch c.Data {
		case "t":
			sb.WriteString(c.InnerText())
		case "tab":
			sb.WriteByte('\t')
		case "br", "cr":
			sb.WriteByte('\n')
		case "delText", "instrText":
			// tracked deletions and field codes are not body text
		default:
			collectRuns(c, sb)
		}
	}
}
