package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/interfaces"
	_ "modernc.org/sqlite"
)

// Repository is a single-file SQLite implementation of
// interfaces.Repository. It keeps chat sessions across process runs so
// an interactive session can be inspected or resumed later.
type Repository struct {
	conn    *sql.DB
	session *sessionRepository
}

// New opens (or creates) the SQLite store at the given path and runs
// migrations. The caller is responsible for calling Close().
func New(ctx context.Context, path string) (*Repository, error) {
	if path == "" {
		return nil, goerr.New("database path must not be empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create database directory", goerr.V("dir", dir))
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("path", path))
	}

	// modernc.org/sqlite does not support concurrent writers
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, goerr.Wrap(err, "failed to ping database", goerr.V("path", path))
	}

	if err := migrate(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &Repository{
		conn:    conn,
		session: &sessionRepository{conn: conn},
	}, nil
}

func migrate(ctx context.Context, conn *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	messages   TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions (updated_at DESC);
`
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return goerr.Wrap(err, "failed to run migrations")
	}
	return nil
}

// Session returns the session repository
func (r *Repository) Session() interfaces.SessionRepository {
	return r.session
}

// Close closes the underlying database connection
func (r *Repository) Close() error {
	if r == nil || r.conn == nil {
		return nil
	}
	return r.conn.Close()
}
