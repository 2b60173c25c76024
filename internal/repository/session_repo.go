package repository

import (
	"context"
	"errors"
	"sync"

	"converso/internal/domain"
)

var ErrNotFound = errors.New("not found")

// SessionRepository guarda las sesiones de chat. Las sesiones viven solo en
// memoria: el historial no se persiste de forma durable.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.ChatSession) error
	GetByID(ctx context.Context, id string) (*domain.ChatSession, error)
	ListByUserID(ctx context.Context, userID string) ([]*domain.ChatSession, error)
	Delete(ctx context.Context, id string) error
}

type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.ChatSession
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]*domain.ChatSession)}
}

func (r *MemorySessionRepository) Create(_ context.Context, session *domain.ChatSession) error {
	if session == nil || session.ID == "" {
		return errors.New("session without id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *MemorySessionRepository) GetByID(_ context.Context, id string) (*domain.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (r *MemorySessionRepository) ListByUserID(_ context.Context, userID string) ([]*domain.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.ChatSession
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MemorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
