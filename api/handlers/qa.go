package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feichai0017/document-qa/internal/models"
	"github.com/feichai0017/document-qa/internal/service/qa"
	"github.com/feichai0017/document-qa/pkg/logger"
)

var errMissingQuestion = errors.New("question is required")

type QAHandler struct {
	service qa.AnswerRelay
	logger  logger.Logger
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type HistoryResponse struct {
	History []models.QAExchange `json:"history"`
}

func NewQAHandler(service qa.AnswerRelay, logger logger.Logger) *QAHandler {
	return &QAHandler{
		service: service,
		logger:  logger,
	}
}

// Ask 将问题和文档内容转发给模型
func (h *QAHandler) Ask(c *gin.Context) {
	question, ok := c.GetPostForm("question")
	if !ok {
		handleError(c, h.logger, http.StatusBadRequest, "Invalid question", errMissingQuestion)
		return
	}
	docContext := c.PostForm("context")

	answer, err := h.service.Answer(c.Request.Context(), question, docContext)
	if err != nil {
		handleError(c, h.logger, http.StatusInternalServerError, "Failed to get answer", err)
		return
	}

	c.JSON(http.StatusOK, AskResponse{Answer: answer})
}

func (h *QAHandler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, HistoryResponse{History: h.service.History()})
}

func (h *QAHandler) ClearHistory(c *gin.Context) {
	h.service.ClearHistory()
	c.JSON(http.StatusOK, gin.H{"message": "History cleared"})
}

// Health reports liveness and the configured model backend.
func (h *QAHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"model":  h.service.ModelName(),
	})
}
