package agent

import (
	"context"
	"errors"
	"mime"
	"strings"

	"github.com/feichai0017/document-qa/internal/agent/document"
	"github.com/feichai0017/document-qa/internal/agent/document/csv"
	"github.com/feichai0017/document-qa/internal/agent/document/docx"
	"github.com/feichai0017/document-qa/internal/agent/document/jsondoc"
	"github.com/feichai0017/document-qa/internal/agent/document/pdf"
	"github.com/feichai0017/document-qa/internal/agent/document/text"
	"github.com/feichai0017/document-qa/internal/models"
	"github.com/feichai0017/document-qa/pkg/converters"
	"github.com/feichai0017/document-qa/pkg/logger"
)

// Hint carries the classification hints of an upload, normalised.
type Hint struct {
	MimeType string
	Filename string
}

// Predicate decides whether a rule applies to an upload.
type Predicate func(Hint) bool

// Rule binds a predicate to the processor that handles matching uploads.
type Rule struct {
	Name      string
	Match     Predicate
	Processor document.Processor
}

// Dispatcher picks a processor from declared type and filename, first match wins.
type Dispatcher struct {
	rules    []Rule
	maxChars int
	logger   logger.Logger
}

// NewDispatcher returns a dispatcher with the built-in rules registered in
// priority order.
func NewDispatcher(log logger.Logger) *Dispatcher {
	d := &Dispatcher{
		maxChars: models.MaxExtractedChars,
		logger:   log.Named("dispatcher"),
	}

	d.Register(Rule{Name: "pdf", Match: MimeIs(models.MimePDF), Processor: pdf.NewProcessor(log.Named("pdf"))})
	d.Register(Rule{Name: "docx", Match: MimeIs(models.MimeDOCX), Processor: docx.NewProcessor(log.Named("docx"))})
	d.Register(Rule{Name: "text", Match: AnyOf(MimePrefix("text/"), SuffixIs(".txt")), Processor: text.NewProcessor()})
	d.Register(Rule{Name: "csv", Match: SuffixIs(".csv"), Processor: csv.NewProcessor()})
	d.Register(Rule{Name: "json", Match: SuffixIs(".json"), Processor: jsondoc.NewProcessor()})

	return d
}

// Register appends a rule; it is consulted after every rule registered before it.
func (d *Dispatcher) Register(rule Rule) {
	d.rules = append(d.rules, rule)
}

// Select returns the processor for the first rule matching the hints.
func (d *Dispatcher) Select(mimeType, filename string) (document.Processor, error) {
	hint := newHint(mimeType, filename)

	if rule, ok := d.match(hint); ok {
		d.logger.Debug("Selected processor",
			logger.String("rule", rule.Name),
			logger.String("mimeType", hint.MimeType),
			logger.String("filename", filename),
		)
		return rule.Processor, nil
	}

	d.logger.Warn("Unsupported file type",
		logger.String("mimeType", mimeType),
		logger.String("filename", filename),
	)
	return nil, &models.UnsupportedTypeError{MimeType: hint.MimeType, Filename: filename}
}

// Supports reports whether any rule matches the hints, without logging.
func (d *Dispatcher) Supports(mimeType, filename string) bool {
	_, ok := d.match(newHint(mimeType, filename))
	return ok
}

func (d *Dispatcher) match(hint Hint) (Rule, bool) {
	for _, rule := range d.rules {
		if rule.Match(hint) {
			return rule, true
		}
	}
	return Rule{}, false
}

func newHint(mimeType, filename string) Hint {
	return Hint{
		MimeType: NormalizeMimeType(mimeType),
		Filename: strings.ToLower(strings.TrimSpace(filename)),
	}
}

// Dispatch extracts the text of doc and cuts it to the first maxChars characters.
func (d *Dispatcher) Dispatch(ctx context.Context, doc models.UploadedDocument) (*models.ExtractedText, error) {
	processor, err := d.Select(doc.MimeType, doc.Filename)
	if err != nil {
		return nil, err
	}

	raw, err := processor.Extract(ctx, doc.Content)
	if err != nil {
		var extractErr *models.ExtractionFailedError
		if !errors.As(err, &extractErr) {
			err = document.Fail(processor.Format(), err)
		}
		return nil, err
	}

	out, truncated := converters.Truncate(raw, d.maxChars)
	return &models.ExtractedText{
		Text:      out,
		Format:    processor.Format(),
		Truncated: truncated,
	}, nil
}

// NormalizeMimeType lower-cases a media type and drops its parameters.
func NormalizeMimeType(mimeType string) string {
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		return ""
	}
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mediaType
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// MimeIs matches uploads whose normalised type equals mimeType.
func MimeIs(mimeType string) Predicate {
	return func(h Hint) bool { return h.MimeType == mimeType }
}

// MimePrefix matches uploads whose normalised type starts with prefix.
func MimePrefix(prefix string) Predicate {
	return func(h Hint) bool { return strings.HasPrefix(h.MimeType, prefix) }
}

// SuffixIs matches uploads whose lower-cased filename ends with suffix.
func SuffixIs(suffix string) Predicate {
	return func(h Hint) bool { return strings.HasSuffix(h.Filename, suffix) }
}

// AnyOf matches when at least one of preds matches.
func AnyOf(preds ...Predicate) Predicate {
	return func(h Hint) bool {
		for _, p := range preds {
			if p(h) {
				return true
			}
		}
		return false
	}
}
