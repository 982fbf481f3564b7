package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/trivia-quiz-bot/internal/quiz"
)

// Session is a quiz being played in one chat.
type Session struct {
	Runner    *quiz.Runner
	Renderer  quiz.Renderer
	SetID     uuid.UUID
	SetTitle  string
	StartedAt time.Time

	// PlayerID is the user who started the quiz. Zero accepts answers
	// from anyone in the chat.
	PlayerID int64
}

// SessionStorage provides in-memory storage for running quizzes by chat ID.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*Session),
	}
}

// Store saves the session for a chat and returns the one it replaced, if any.
func (s *SessionStorage) Store(chatID int64, session *Session) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.sessions[chatID]
	s.sessions[chatID] = session
	return prev
}

// Get retrieves the session of a chat.
func (s *SessionStorage) Get(chatID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[chatID]
	return session, ok
}

// Delete removes the session of a chat if it is still the given one.
// A nil session removes unconditionally.
func (s *SessionStorage) Delete(chatID int64, session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session != nil && s.sessions[chatID] != session {
		return
	}
	delete(s.sessions, chatID)
}

// Len returns the number of running sessions.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StopAll stops every running quiz and clears the storage.
func (s *SessionStorage) StopAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[int64]*Session)
	s.mu.Unlock()

	for _, session := range sessions {
		if session.Runner != nil {
			session.Runner.Stop()
		}
		if c, ok := session.Renderer.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
