package document

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/feichai0017/document-qa/internal/agent"
	"github.com/feichai0017/document-qa/internal/models"
	"github.com/feichai0017/document-qa/internal/utils/validator"
	"github.com/feichai0017/document-qa/pkg/logger"
)

type DocumentService struct {
	dispatcher Dispatcher
	validator  *validator.DocumentValidator
	logger     logger.Logger
}

func NewService(dispatcher Dispatcher, v *validator.DocumentValidator, logger logger.Logger) *DocumentService {
	return &DocumentService{
		dispatcher: dispatcher,
		validator:  v,
		logger:     logger,
	}
}

// GetService 使用默认的分发器创建文档服务
func GetService(log logger.Logger) DocumentProcessor {
	return NewService(agent.NewDispatcher(log), validator.NewDocumentValidator(log), log)
}

// ExtractFile 读取上传的文件并提取文本
func (s *DocumentService) ExtractFile(
	ctx context.Context,
	file multipart.File,
	header *multipart.FileHeader,
) (*models.ExtractedText, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return s.Extract(ctx, models.UploadedDocument{
		Content:  content,
		MimeType: header.Header.Get("Content-Type"),
		Filename: header.Filename,
	})
}

// Extract 解析文档类型并分发给对应的处理器
func (s *DocumentService) Extract(ctx context.Context, doc models.UploadedDocument) (*models.ExtractedText, error) {
	log := logger.FromContext(ctx, s.logger)

	// 声明的类型或文件名已能匹配处理器时不做内容检测
	info := s.validator.Describe(doc.Filename, doc.MimeType, doc.Content)
	if !s.dispatcher.Supports(info.MimeType, info.Filename) {
		info = s.validator.Inspect(doc.Filename, doc.MimeType, doc.Content)
	}
	doc.MimeType = info.MimeType

	log.Info("Starting text extraction",
		logger.String("filename", info.Filename),
		logger.String("mimeType", info.MimeType),
		logger.Bool("sniffed", info.Sniffed),
		logger.Int64("size", info.Size),
	)

	start := time.Now()
	result, err := s.dispatcher.Dispatch(ctx, doc)
	if err != nil {
		log.Error("Text extraction failed",
			logger.String("filename", info.Filename),
			logger.String("mimeType", info.MimeType),
			logger.Error(err),
		)
		return nil, err
	}

	log.Info("Text extraction completed",
		logger.String("filename", info.Filename),
		logger.String("format", string(result.Format)),
		logger.Int("chars", len([]rune(result.Text))),
		logger.Bool("truncated", result.Truncated),
		logger.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}
