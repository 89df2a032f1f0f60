package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/interfaces"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/model"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
	"github.com/saurabh-lab/project-dashboard/pkg/repository/memory"
	"github.com/saurabh-lab/project-dashboard/pkg/repository/sqlite"
)

func TestMemorySessionRepository(t *testing.T) {
	runSessionRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestSQLiteSessionRepository(t *testing.T) {
	runSessionRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "sessions.db"))
		gt.NoError(t, err).Required()
		t.Cleanup(func() {
			gt.NoError(t, repo.Close())
		})
		return repo
	})
}

func runSessionRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Run("put and get round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		session := model.NewChatSession("sprint review")
		session.Append(types.MessageRoleUser, "", "how did we do?")
		session.Append(types.MessageRoleModel, "", "velocity held steady at 30 points")

		gt.NoError(t, repo.Session().Put(ctx, session)).Required()

		loaded, err := repo.Session().Get(ctx, session.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, loaded.ID).Equal(session.ID)
		gt.Value(t, loaded.Title).Equal("sprint review")
		gt.Array(t, loaded.Messages).Length(2).Required()
		gt.Value(t, loaded.Messages[0].Role).Equal(types.MessageRoleUser)
		gt.Value(t, loaded.Messages[1].Text).Equal("velocity held steady at 30 points")
	})

	t.Run("put updates existing session", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		session := model.NewChatSession("")
		gt.NoError(t, repo.Session().Put(ctx, session)).Required()

		session.Append(types.MessageRoleUser, "", "second message")
		gt.NoError(t, repo.Session().Put(ctx, session)).Required()

		loaded, err := repo.Session().Get(ctx, session.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, loaded.Messages).Length(1)
	})

	t.Run("get unknown session returns not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Session().Get(context.Background(), model.SessionID("missing"))
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, interfaces.ErrSessionNotFound)).Equal(true)
	})

	t.Run("list returns sessions newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first := model.NewChatSession("first")
		gt.NoError(t, repo.Session().Put(ctx, first)).Required()

		second := model.NewChatSession("second")
		second.Append(types.MessageRoleUser, "", "hello")
		gt.NoError(t, repo.Session().Put(ctx, second)).Required()

		sessions, err := repo.Session().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, sessions).Length(2).Required()
		gt.Value(t, sessions[0].Title).Equal("second")
	})

	t.Run("list on empty store returns empty slice", func(t *testing.T) {
		repo := newRepo(t)

		sessions, err := repo.Session().List(context.Background())
		gt.NoError(t, err).Required()
		gt.Array(t, sessions).Length(0)
	})

	t.Run("delete removes the session", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		session := model.NewChatSession("")
		gt.NoError(t, repo.Session().Put(ctx, session)).Required()
		gt.NoError(t, repo.Session().Delete(ctx, session.ID)).Required()

		_, err := repo.Session().Get(ctx, session.ID)
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, interfaces.ErrSessionNotFound)).Equal(true)
	})

	t.Run("delete unknown session returns not found", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Session().Delete(context.Background(), model.SessionID("missing"))
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, interfaces.ErrSessionNotFound)).Equal(true)
	})

	t.Run("stored session is isolated from caller mutation", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		session := model.NewChatSession("")
		session.Append(types.MessageRoleUser, "", "original")
		gt.NoError(t, repo.Session().Put(ctx, session)).Required()

		session.Messages[0].Text = "mutated"

		loaded, err := repo.Session().Get(ctx, session.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, loaded.Messages[0].Text).Equal("original")
	})

	t.Run("empty session ID rejected", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Session().Put(context.Background(), &model.ChatSession{})
		gt.Error(t, err)
	})
}
