package interfaces

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/model"
)

// ErrSessionNotFound is returned when a requested session does not exist
var ErrSessionNotFound = goerr.New("session not found")

// SessionRepository defines persistence operations for chat sessions
type SessionRepository interface {
	Put(ctx context.Context, session *model.ChatSession) error
	Get(ctx context.Context, id model.SessionID) (*model.ChatSession, error)
	List(ctx context.Context) ([]*model.ChatSession, error)
	Delete(ctx context.Context, id model.SessionID) error
}
