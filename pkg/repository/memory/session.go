package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/interfaces"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/model"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[model.SessionID]*model.ChatSession
}

func newSessionRepository() *sessionRepository {
	return &sessionRepository{
		sessions: make(map[model.SessionID]*model.ChatSession),
	}
}

func copySession(s *model.ChatSession) *model.ChatSession {
	copied := &model.ChatSession{
		ID:        s.ID,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Messages != nil {
		copied.Messages = make([]model.ChatMessage, len(s.Messages))
		copy(copied.Messages, s.Messages)
	}
	return copied
}

func (r *sessionRepository) Put(ctx context.Context, session *model.ChatSession) error {
	if session.ID == "" {
		return goerr.New("session ID must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = copySession(session)
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id model.SessionID) (*model.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrSessionNotFound, "no such session", goerr.V("sessionID", id))
	}
	return copySession(s), nil
}

func (r *sessionRepository) List(ctx context.Context) ([]*model.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.ChatSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		result = append(result, copySession(s))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})

	return result, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id model.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; !exists {
		return goerr.Wrap(interfaces.ErrSessionNotFound, "no such session", goerr.V("sessionID", id))
	}
	delete(r.sessions, id)
	return nil
}
