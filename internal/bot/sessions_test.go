package bot

import (
	"Bodi/internal/core/domain"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessions(t *testing.T) {
	s := NewSessions()

	assert.Equal(t, domain.LanguageEnglish, s.Language(1))
	s.SetLanguage(1, domain.LanguagePidgin)
	assert.Equal(t, domain.LanguagePidgin, s.Language(1))
	assert.Equal(t, domain.LanguageEnglish, s.Language(2), "chats do not share settings")

	for i := 0; i < maxHistory+3; i++ {
		s.Append(1, domain.ChatMessage{Role: domain.RoleUser, Content: fmt.Sprint(i)})
	}
	history := s.History(1)
	assert.Len(t, history, maxHistory)
	assert.Equal(t, "3", history[0].Content)

	history[0].Content = "mutated"
	assert.Equal(t, "3", s.History(1)[0].Content, "History returns a copy")

	s.Reset(1)
	assert.Empty(t, s.History(1))
	assert.Equal(t, domain.LanguagePidgin, s.Language(1))
}

func TestSessions_Concurrent(t *testing.T) {
	s := NewSessions()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(chat int64) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.Append(chat%2, domain.ChatMessage{Role: domain.RoleUser, Content: "hi"})
				_ = s.History(chat % 2)
			}
		}(int64(w))
	}
	wg.Wait()
	assert.Len(t, s.History(0), maxHistory)
}
