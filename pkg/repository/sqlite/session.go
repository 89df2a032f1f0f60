package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/interfaces"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/model"
)

type sessionRepository struct {
	conn *sql.DB
}

func (r *sessionRepository) Put(ctx context.Context, session *model.ChatSession) error {
	if session.ID == "" {
		return goerr.New("session ID must not be empty")
	}

	messages, err := json.Marshal(session.Messages)
	if err != nil {
		return goerr.Wrap(err, "failed to encode session messages", goerr.V("sessionID", session.ID))
	}

	const query = `
INSERT INTO sessions (id, title, messages, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	messages = excluded.messages,
	updated_at = excluded.updated_at
`
	_, err = r.conn.ExecContext(ctx, query,
		session.ID.String(),
		session.Title,
		string(messages),
		session.CreatedAt.UTC().Format(time.RFC3339Nano),
		session.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to store session", goerr.V("sessionID", session.ID))
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id model.SessionID) (*model.ChatSession, error) {
	const query = `SELECT id, title, messages, created_at, updated_at FROM sessions WHERE id = ?`

	row := r.conn.QueryRowContext(ctx, query, id.String())
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(interfaces.ErrSessionNotFound, "no such session", goerr.V("sessionID", id))
		}
		return nil, goerr.Wrap(err, "failed to load session", goerr.V("sessionID", id))
	}
	return session, nil
}

func (r *sessionRepository) List(ctx context.Context) ([]*model.ChatSession, error) {
	const query = `SELECT id, title, messages, created_at, updated_at FROM sessions ORDER BY updated_at DESC`

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sessions")
	}
	defer func() {
		_ = rows.Close()
	}()

	var sessions []*model.ChatSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan session row")
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate sessions")
	}
	if sessions == nil {
		sessions = []*model.ChatSession{}
	}
	return sessions, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id model.SessionID) error {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id.String())
	if err != nil {
		return goerr.Wrap(err, "failed to delete session", goerr.V("sessionID", id))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to check delete result", goerr.V("sessionID", id))
	}
	if affected == 0 {
		return goerr.Wrap(interfaces.ErrSessionNotFound, "no such session", goerr.V("sessionID", id))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*model.ChatSession, error) {
	var (
		id        string
		title     string
		messages  string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&id, &title, &messages, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	session := &model.ChatSession{
		ID:    model.SessionID(id),
		Title: title,
	}
	if err := json.Unmarshal([]byte(messages), &session.Messages); err != nil {
		return nil, goerr.Wrap(err, "failed to decode session messages", goerr.V("sessionID", id))
	}

	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid created_at", goerr.V("sessionID", id))
	}
	updated, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid updated_at", goerr.V("sessionID", id))
	}
	session.CreatedAt = created
	session.UpdatedAt = updated

	return session, nil
}
