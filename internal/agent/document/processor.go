package document

import (
	"context"

	"github.com/feichai0017/document-qa/internal/models"
)

// Processor 文档处理器接口
type Processor interface {
	// Format 返回处理器支持的文件类型
	Format() models.FileType

	// Extract 从原始字节中提取纯文本
	Extract(ctx context.Context, content []byte) (string, error)
}

// Fail wraps cause as an extraction failure for format.
func Fail(format models.FileType, cause error) error {
	return &models.ExtractionFailedError{Format: format, Cause: cause}
}
