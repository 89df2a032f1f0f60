package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/saurabh-lab/project-dashboard/pkg/cli/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadAppConfiguration(t *testing.T) {
	t.Run("empty path returns zero configuration", func(t *testing.T) {
		cfg, err := config.LoadAppConfiguration("")
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.Capacity.SprintWindow).Equal(0)
		gt.Value(t, cfg.Agent.TurnLimit).Equal(0)
	})

	t.Run("loads valid configuration", func(t *testing.T) {
		path := writeConfigFile(t, `
[capacity]
sprint_window = 3
assumed_points = 30

[agent]
turn_limit = 8
retry_limit = 2
`)

		cfg, err := config.LoadAppConfiguration(path)
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.Capacity.SprintWindow).Equal(3)
		gt.Value(t, cfg.Capacity.AssumedPoints).Equal(30)
		gt.Value(t, cfg.Agent.TurnLimit).Equal(8)
		gt.Value(t, cfg.Agent.RetryLimit).Equal(2)
	})

	t.Run("rejects negative values", func(t *testing.T) {
		path := writeConfigFile(t, `
[capacity]
sprint_window = -1
`)

		_, err := config.LoadAppConfiguration(path)
		gt.Error(t, err)
	})

	t.Run("rejects broken TOML", func(t *testing.T) {
		path := writeConfigFile(t, `[capacity`)

		_, err := config.LoadAppConfiguration(path)
		gt.Error(t, err)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := config.LoadAppConfiguration("/no/such/config.toml")
		gt.Error(t, err)
	})
}

func TestRepository_Configure(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("memory", "")
		repo, err := cfg.Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Close())
	})

	t.Run("sqlite backend requires db path", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("sqlite", "")
		_, err := cfg.Configure(t.Context())
		gt.Error(t, err)
	})

	t.Run("sqlite backend creates database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sessions.db")
		cfg := config.NewRepositoryForTest("sqlite", path)
		repo, err := cfg.Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Close())
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("postgres", "")
		_, err := cfg.Configure(t.Context())
		gt.Error(t, err)
	})
}
