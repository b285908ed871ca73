package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"ctchen222/tictactoe-history/internal/events"
)

var ErrSessionNotFound = errors.New("session not found")

// Manager keeps every open session in memory.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	publisher events.Publisher
}

// NewManager creates a manager whose sessions publish to the given publisher.
func NewManager(publisher events.Publisher) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		publisher: publisher,
	}
}

// Create opens a new session with an empty board.
func (m *Manager) Create(ctx context.Context) *Session {
	s := New(m.publisher)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	slog.InfoContext(ctx, "session created", "session.id", s.ID)
	return s
}

// Remove closes a session and discards its history.
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	slog.InfoContext(ctx, "session removed", "session.id", id, "open", len(m.sessions))
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
