package validator

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/feichai0017/document-qa/pkg/logger"
)

const octetStream = "application/octet-stream"

// DocumentValidator 文档类型解析器
type DocumentValidator struct {
	logger logger.Logger
}

// FileInfo 文件信息
type FileInfo struct {
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	MimeType  string `json:"mimeType"`
	Extension string `json:"extension"`
	Sniffed   bool   `json:"sniffed"`
}

// NewDocumentValidator 创建新的文档类型解析器
func NewDocumentValidator(logger logger.Logger) *DocumentValidator {
	return &DocumentValidator{logger: logger}
}

// Describe 返回文件信息，类型取声明值
func (v *DocumentValidator) Describe(filename, declared string, content []byte) FileInfo {
	return FileInfo{
		Filename:  filename,
		Size:      int64(len(content)),
		MimeType:  strings.TrimSpace(declared),
		Extension: strings.ToLower(filepath.Ext(filename)),
	}
}

// Inspect 返回文件信息。声明类型为空或为 application/octet-stream 时根据内容检测类型
func (v *DocumentValidator) Inspect(filename, declared string, content []byte) FileInfo {
	info := v.Describe(filename, declared, content)

	if !needsSniffing(info.MimeType) {
		return info
	}

	detected := mimetype.Detect(content)
	// a sniffed octet-stream says nothing new; keep the declared value
	if detected.Is(octetStream) {
		return info
	}

	info.MimeType = detected.String()
	info.Sniffed = true
	v.logger.Debug("MIME type detected from content",
		logger.String("filename", filename),
		logger.String("declared", declared),
		logger.String("detected", info.MimeType),
	)
	return info
}

func needsSniffing(declared string) bool {
	if declared == "" {
		return true
	}
	base, _, _ := strings.Cut(declared, ";")
	return strings.EqualFold(strings.TrimSpace(base), octetStream)
}
