package handlers

import (
	"github.com/feichai0017/document-qa/internal/service/document"
	"github.com/feichai0017/document-qa/internal/service/qa"
	"github.com/feichai0017/document-qa/pkg/logger"
)

type Handlers struct {
	Document *DocumentHandler
	QA       *QAHandler
}

func NewHandlers(
	documentService document.DocumentProcessor,
	qaService qa.AnswerRelay,
	logger logger.Logger,
) *Handlers {
	return &Handlers{
		Document: NewDocumentHandler(documentService, logger.Named("document")),
		QA:       NewQAHandler(qaService, logger.Named("qa")),
	}
}
