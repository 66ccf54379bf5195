package bot

import (
	"Bodi/internal/core/domain"
	"sync"
)

// maxHistory bounds the turns replayed to the model per chat.
const maxHistory = 10

type session struct {
	language string
	history  []domain.ChatMessage
}

// Sessions keeps each chat's reply language and recent conversation in
// memory. It is safe for concurrent use by the worker pool.
type Sessions struct {
	mu    sync.Mutex
	chats map[int64]*session
}

func NewSessions() *Sessions {
	return &Sessions{chats: make(map[int64]*session)}
}

func (s *Sessions) get(chatID int64) *session {
	sess, ok := s.chats[chatID]
	if !ok {
		sess = &session{language: domain.LanguageEnglish}
		s.chats[chatID] = sess
	}
	return sess
}

func (s *Sessions) Language(chatID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(chatID).language
}

func (s *Sessions) SetLanguage(chatID int64, language string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(chatID).language = language
}

// History returns a copy of the chat's recent turns, oldest first.
func (s *Sessions) History(chatID int64) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ChatMessage(nil), s.get(chatID).history...)
}

// Append records turns, dropping the oldest beyond maxHistory.
func (s *Sessions) Append(chatID int64, msgs ...domain.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(chatID)
	sess.history = append(sess.history, msgs...)
	if over := len(sess.history) - maxHistory; over > 0 {
		sess.history = append([]domain.ChatMessage(nil), sess.history[over:]...)
	}
}

// Reset forgets the conversation but keeps the language.
func (s *Sessions) Reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(chatID).history = nil
}
