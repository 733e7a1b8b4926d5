package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/sync/errgroup"

	"github.com/feichai0017/document-qa/internal/agent/document"
	"github.com/feichai0017/document-qa/internal/models"
	"github.com/feichai0017/document-qa/pkg/converters"
	"github.com/feichai0017/document-qa/pkg/logger"
)

const defaultMaxWorkers = 4

func init() {
	// keep pdfcpu from creating a config directory under $HOME
	api.DisableConfigDir()
}

type Processor struct {
	logger     logger.Logger
	maxWorkers int
	converter  *converters.TextConverter
}

func NewProcessor(logger logger.Logger) *Processor {
	return &Processor{
		logger:     logger,
		maxWorkers: defaultMaxWorkers,
		// 页面文本直接拼接
		converter: converters.NewTextConverter(""),
	}
}

func (p *Processor) Format() models.FileType {
	return models.PDF
}

// Extract concatenates the text of every page in page order and trims the result.
func (p *Processor) Extract(ctx context.Context, content []byte) (string, error) {
	reader, err := p.open(content)
	if err != nil {
		p.logger.Warn("PDF could not be opened, trying repaired copy", logger.Error(err))

		repaired, repairErr := repair(content)
		if repairErr != nil {
			return "", document.Fail(models.PDF, err)
		}
		if reader, err = p.open(repaired); err != nil {
			return "", document.Fail(models.PDF, err)
		}
	}

	chunks, err := p.extractPages(ctx, reader)
	if err != nil {
		return "", document.Fail(models.PDF, err)
	}

	return strings.TrimSpace(p.converter.Convert(chunks)), nil
}

func (p *Processor) open(content []byte) (reader *pdf.Reader, err error) {
	// ledongthuc/pdf panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			reader, err = nil, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	br := bytes.NewReader(content)
	return pdf.NewReader(br, br.Size())
}

func (p *Processor) extractPages(ctx context.Context, reader *pdf.Reader) ([]models.DocumentChunk, error) {
	numPages := reader.NumPage()
	chunks := make([]models.DocumentChunk, numPages)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxWorkers)

	for i := 1; i <= numPages; i++ {
		pageNum := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			text, err := pageText(reader, pageNum)
			if err != nil {
				return fmt.Errorf("failed to get text from page %d: %w", pageNum, err)
			}

			// each goroutine owns its own slot
			chunks[pageNum-1] = models.DocumentChunk{
				Content: text,
				Metadata: map[string]interface{}{
					converters.PositionKey: pageNum,
					"section":              fmt.Sprintf("page_%d", pageNum),
				},
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.logger.Debug("PDF pages extracted", logger.Int("pages", numPages))
	return chunks, nil
}

func pageText(reader *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed page: %v", r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// repair rewrites content through pdfcpu with relaxed validation,
// which fixes broken cross-reference tables.
func repair(content []byte) (repaired []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			repaired, err = nil, fmt.Errorf("pdfcpu optimize: %v", r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(content), &out, conf); err != nil {
		return nil, fmt.Errorf("pdfcpu optimize: %w", err)
	}
	return out.Bytes(), nil
}
