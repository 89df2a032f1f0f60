package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/model"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
)

func TestChatSession(t *testing.T) {
	t.Run("new session has fresh ID and no messages", func(t *testing.T) {
		s := model.NewChatSession("weekly review")
		gt.Value(t, s.ID.String()).NotEqual("")
		gt.Value(t, s.Title).Equal("weekly review")
		gt.Array(t, s.Messages).Length(0)
		gt.Value(t, s.LastMessage() == nil).Equal(true)
	})

	t.Run("append records role and bumps UpdatedAt", func(t *testing.T) {
		s := model.NewChatSession("")
		before := s.UpdatedAt

		s.Append(types.MessageRoleUser, "", "how is velocity trending?")
		s.Append(types.MessageRoleTool, "metrics__velocity_trend", `{"records":[]}`)

		gt.Array(t, s.Messages).Length(2)
		gt.Value(t, s.Messages[0].Role).Equal(types.MessageRoleUser)
		gt.Value(t, s.Messages[1].Role).Equal(types.MessageRoleTool)
		gt.Value(t, s.Messages[1].Tool).Equal("metrics__velocity_trend")
		gt.Value(t, s.UpdatedAt.Before(before)).Equal(false)

		last := s.LastMessage()
		gt.Value(t, last != nil).Equal(true)
		gt.Value(t, last.Tool).Equal("metrics__velocity_trend")
	})

	t.Run("session IDs are unique", func(t *testing.T) {
		a := model.NewChatSession("")
		b := model.NewChatSession("")
		gt.Value(t, a.ID).NotEqual(b.ID)
	})
}
