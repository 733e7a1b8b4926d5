package history

import (
	"sync"

	"github.com/feichai0017/document-qa/internal/models"
)

// Store 问答记录存储接口
type Store interface {
	// Append 追加一条问答记录
	Append(question, answer string)
	// List 按插入顺序返回所有记录
	List() []models.QAExchange
	// Clear 清空所有记录
	Clear()
}

// MemoryStore keeps exchanges in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	exchanges []models.QAExchange
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(question, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges = append(s.exchanges, models.QAExchange{Question: question, Answer: answer})
}

// List returns a copy; callers may not mutate the store through it.
func (s *MemoryStore) List() []models.QAExchange {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.QAExchange, len(s.exchanges))
	copy(out, s.exchanges)
	return out
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges = nil
}
