package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feichai0017/document-qa/internal/models"
	"github.com/feichai0017/document-qa/internal/service/document"
	"github.com/feichai0017/document-qa/pkg/logger"
)

type DocumentHandler struct {
	service document.DocumentProcessor
	logger  logger.Logger
}

// UploadResponse 定义上传响应结构
type UploadResponse struct {
	Text string `json:"text"`
}

// ErrorResponse 定义错误响应结构
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewDocumentHandler(service document.DocumentProcessor, logger logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  logger,
	}
}

// Upload 提取上传文档的文本
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		handleError(c, h.logger, http.StatusBadRequest, "Invalid file upload", err)
		return
	}
	defer file.Close()

	result, err := h.service.ExtractFile(c.Request.Context(), file, header)
	if err != nil {
		handleError(c, h.logger, statusFor(err), "Failed to extract text", err)
		return
	}

	c.JSON(http.StatusOK, UploadResponse{Text: result.Text})
}

func statusFor(err error) int {
	var unsupported *models.UnsupportedTypeError
	if errors.As(err, &unsupported) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// handleError 统一错误处理
func handleError(c *gin.Context, log logger.Logger, status int, message string, err error) {
	logger.FromContext(c.Request.Context(), log).Error(message,
		logger.String("path", c.Request.URL.Path),
		logger.Int("status", status),
		logger.Error(err),
	)

	response := ErrorResponse{Error: message}
	if err != nil {
		response.Error = err.Error()
	}
	c.JSON(status, response)
}
