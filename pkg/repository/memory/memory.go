package memory

import (
	"github.com/saurabh-lab/project-dashboard/pkg/domain/interfaces"
)

// Repository is an in-memory implementation of interfaces.Repository,
// used as the default backend and in tests.
type Repository struct {
	session *sessionRepository
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		session: newSessionRepository(),
	}
}

// Session returns the session repository
func (r *Repository) Session() interfaces.SessionRepository {
	return r.session
}

// Close is a no-op for the in-memory backend
func (r *Repository) Close() error {
	return nil
}
