package history

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/document-qa/internal/models"
)

func TestAppendListClear(t *testing.T) {
	s := NewMemoryStore()
	assert.Empty(t, s.List())

	s.Append("q1", "a1")
	s.Append("q2", "a2")
	assert.Equal(t, []models.QAExchange{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	}, s.List())

	s.Clear()
	list := s.List()
	require.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.Append("q", "a")

	list := s.List()
	list[0].Answer = "changed"
	assert.Equal(t, "a", s.List()[0].Answer)
}

func TestConcurrentAppends(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Append(fmt.Sprintf("q%d", i), "a")
			_ = s.List()
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.List(), 50)
}
