package qa

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/document-qa/internal/models"
	"github.com/feichai0017/document-qa/pkg/history"
	"github.com/feichai0017/document-qa/pkg/logger"
)

type fakeModel struct {
	reply   string
	err     error
	prompts []string
	calls   int
	wait    bool
}

func (m *fakeModel) Name() string { return "fake/model" }

func (m *fakeModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	if m.wait {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.reply, m.err
}

func (m *fakeModel) Close() error { return nil }

func TestBuildPromptContainsInputsVerbatim(t *testing.T) {
	ctx := "Line one.\nLine \"two\" with %s and {braces}."
	question := "What is on line two?"

	prompt := BuildPrompt(ctx, question)
	assert.Contains(t, prompt, ctx)
	assert.Contains(t, prompt, question)
}

func TestAnswerTrimsAndRecords(t *testing.T) {
	model := &fakeModel{reply: "\n  The answer.  \n"}
	store := history.NewMemoryStore()
	s := NewService(model, store, logger.NewTestLogger(), 0)

	answer, err := s.Answer(context.Background(), "q1", "doc text")
	require.NoError(t, err)
	assert.Equal(t, "The answer.", answer)

	require.Len(t, model.prompts, 1)
	assert.Equal(t, BuildPrompt("doc text", "q1"), model.prompts[0])
	assert.Equal(t, []models.QAExchange{{Question: "q1", Answer: "The answer."}}, s.History())
}

func TestAnswerModelFailure(t *testing.T) {
	model := &fakeModel{err: errors.New("quota exceeded for project")}
	tl := logger.NewTestLogger()
	s := NewService(model, history.NewMemoryStore(), tl, 0)

	answer, err := s.Answer(context.Background(), "q", "c")
	assert.Empty(t, answer)

	var modelErr *models.ModelUnavailableError
	require.True(t, errors.As(err, &modelErr))
	assert.Equal(t, "quota exceeded for project", err.Error())
	assert.Equal(t, 1, model.calls, "must not retry")
	assert.Empty(t, s.History())
	assert.Equal(t, []string{"Model call failed"}, tl.Messages("ERROR"))
}

func TestAnswerTimeout(t *testing.T) {
	model := &fakeModel{wait: true}
	s := NewService(model, history.NewMemoryStore(), logger.NewTestLogger(), 10*time.Millisecond)

	_, err := s.Answer(context.Background(), "q", "c")
	var modelErr *models.ModelUnavailableError
	require.True(t, errors.As(err, &modelErr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHistoryOrderAndClear(t *testing.T) {
	model := &fakeModel{reply: "a"}
	s := NewService(model, history.NewMemoryStore(), logger.NewTestLogger(), 0)

	_, err := s.Answer(context.Background(), "q1", "c")
	require.NoError(t, err)
	model.reply = "b"
	_, err = s.Answer(context.Background(), "q2", "c")
	require.NoError(t, err)

	assert.Equal(t, []models.QAExchange{{Question: "q1", Answer: "a"}, {Question: "q2", Answer: "b"}}, s.History())
	assert.Equal(t, "fake/model", s.ModelName())

	s.ClearHistory()
	assert.Empty(t, s.History())
}
