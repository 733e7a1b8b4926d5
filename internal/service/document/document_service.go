package document

import (
	"context"
	"mime/multipart"

	"github.com/feichai0017/document-qa/internal/models"
)

type DocumentProcessor interface {
	ExtractFile(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*models.ExtractedText, error)
	Extract(ctx context.Context, doc models.UploadedDocument) (*models.ExtractedText, error)
}

// Dispatcher routes a document to the extractor for its format.
type Dispatcher interface {
	Supports(mimeType, filename string) bool
	Dispatch(ctx context.Context, doc models.UploadedDocument) (*models.ExtractedText, error)
}
