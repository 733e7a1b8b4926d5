package qa

import (
	"context"
	"strings"
	"time"

	"github.com/feichai0017/document-qa/internal/agent/llm"
	"github.com/feichai0017/document-qa/internal/models"
	"github.com/feichai0017/document-qa/pkg/history"
	"github.com/feichai0017/document-qa/pkg/logger"
)

// AnswerRelay 问答服务接口
type AnswerRelay interface {
	Answer(ctx context.Context, question, docContext string) (string, error)
	History() []models.QAExchange
	ClearHistory()
	ModelName() string
}

type Service struct {
	model   llm.Model
	history history.Store
	logger  logger.Logger
	timeout time.Duration
}

// NewService wires the relay; timeout <= 0 leaves the call bounded only by ctx.
func NewService(model llm.Model, store history.Store, log logger.Logger, timeout time.Duration) *Service {
	return &Service{
		model:   model,
		history: store,
		logger:  log,
		timeout: timeout,
	}
}

// Answer 将问题和文档内容发送给模型并返回回答
func (s *Service) Answer(ctx context.Context, question, docContext string) (string, error) {
	log := logger.FromContext(ctx, s.logger)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := s.model.Generate(ctx, BuildPrompt(docContext, question))
	if err != nil {
		log.Error("Model call failed",
			logger.String("model", s.model.Name()),
			logger.Duration("elapsed", time.Since(start)),
			logger.Error(err),
		)
		return "", &models.ModelUnavailableError{Cause: err}
	}

	answer := strings.TrimSpace(raw)
	s.history.Append(question, answer)

	log.Info("Question answered",
		logger.String("model", s.model.Name()),
		logger.Int("contextChars", len([]rune(docContext))),
		logger.Int("answerChars", len([]rune(answer))),
		logger.Duration("elapsed", time.Since(start)),
	)
	return answer, nil
}

func (s *Service) History() []models.QAExchange {
	return s.history.List()
}

func (s *Service) ClearHistory() {
	s.history.Clear()
	s.logger.Info("History cleared")
}

func (s *Service) ModelName() string {
	return s.model.Name()
}
