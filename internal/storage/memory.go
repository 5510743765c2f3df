package storage

import (
	"context"
	"sync"

	"github.com/marianmykola/quiz-bot/internal/quiz"
)

// Memory реализует quiz.SessionStore в памяти.
// Сессии живут только в процессе и теряются при рестарте — это заявленное
// ограничение, персистентность сессий не требуется.
type Memory struct {
	mu       sync.RWMutex
	sessions map[int64]*quiz.Session
}

// NewMemory создаёт новое хранилище сессий в памяти.
func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[int64]*quiz.Session),
	}
}

// Get возвращает сессию пользователя.
func (m *Memory) Get(_ context.Context, userID int64) (*quiz.Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[userID]

	return session, ok, nil
}

// Put сохраняет сессию пользователя, перезаписывая прежнюю.
func (m *Memory) Put(_ context.Context, userID int64, session *quiz.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[userID] = session

	return nil
}

// Len возвращает количество активных сессий.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}
