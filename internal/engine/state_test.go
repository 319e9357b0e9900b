package engine

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendPreservesOrder(t *testing.T) {
	s := NewState(Options{})
	s.Append(Turn{Role: RoleUser, Content: "hi"}, Turn{Role: RoleAssistant, Content: "hello"})
	s.Append(Turn{Role: RoleUser, Content: "next"})

	h := s.History()
	require.Len(t, h, 3)
	require.Equal(t, RoleUser, h[0].Role)
	require.Equal(t, "hello", h[1].Content)
	require.Equal(t, "next", h[2].Content)
}

func TestHistoryLimitDropsOldestTurns(t *testing.T) {
	s := NewState(Options{HistoryLimit: 4})
	for i := 0; i < 10; i++ {
		s.Append(Turn{Role: RoleUser, Content: fmt.Sprintf("m%d", i)})
	}

	h := s.History()
	require.Len(t, h, 4)
	require.Equal(t, "m6", h[0].Content)
	require.Equal(t, "m9", h[3].Content)
	require.Equal(t, 4, s.Status().HistoryLen)
}

func TestStatusSnapshot(t *testing.T) {
	s := NewState(Options{ModelID: "CatLLM-14B-Distill-v1", ContextWindow: 4096})
	require.Equal(t, Status{ModelID: "CatLLM-14B-Distill-v1"}, s.Status())

	s.SetThinking(true)
	s.Append(Turn{Role: RoleUser, Content: "x"})
	st := s.Status()
	require.True(t, st.Thinking)
	require.Equal(t, 1, st.HistoryLen)

	s.SetThinking(false)
	require.False(t, s.Thinking())
}

func TestHistoryCopyIsDetached(t *testing.T) {
	s := NewState(Options{})
	s.Append(Turn{Role: RoleUser, Content: "original"})

	h := s.History()
	h[0].Content = "mutated"
	require.Equal(t, "original", s.History()[0].Content)
}

func TestConcurrentAppendsAreSafe(t *testing.T) {
	s := NewState(Options{HistoryLimit: 64})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Append(Turn{Role: RoleUser, Content: "c"})
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 64, s.Status().HistoryLen)
}
