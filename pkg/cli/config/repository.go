package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/interfaces"
	"github.com/saurabh-lab/project-dashboard/pkg/repository/memory"
	"github.com/saurabh-lab/project-dashboard/pkg/repository/sqlite"
	"github.com/saurabh-lab/project-dashboard/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for the session store backend
type Repository struct {
	backend string
	dbPath  string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Session store backend (sqlite or memory)",
			Value:       "memory",
			Sources:     cli.EnvVars("DASHBOARD_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "db-path",
			Usage:       "SQLite database path (required when using sqlite backend)",
			Sources:     cli.EnvVars("DASHBOARD_DB_PATH"),
			Destination: &r.dbPath,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "sqlite":
		if r.dbPath == "" {
			return nil, goerr.New("db-path is required when using sqlite backend")
		}
		repo, err := sqlite.New(ctx, r.dbPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sqlite repository")
		}
		logging.Default().Info("Using SQLite repository", "path", r.dbPath)
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory repository (sessions are not persisted)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}
