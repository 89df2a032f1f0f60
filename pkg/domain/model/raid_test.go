package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/model"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
)

func TestRAIDItemState(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -10)
	future := now.AddDate(0, 0, 10)

	t.Run("open item with past target is overdue", func(t *testing.T) {
		item := &model.RAIDItem{Status: types.RAIDStatusOpen, TargetDate: &past}
		gt.Value(t, item.State(now)).Equal(types.ItemStateOverdue)
	})

	t.Run("open item with future target is open", func(t *testing.T) {
		item := &model.RAIDItem{Status: types.RAIDStatusOpen, TargetDate: &future}
		gt.Value(t, item.State(now)).Equal(types.ItemStateOpen)
	})

	t.Run("open item without target date is never overdue", func(t *testing.T) {
		item := &model.RAIDItem{Status: types.RAIDStatusOpen}
		gt.Value(t, item.State(now)).Equal(types.ItemStateOpen)
	})

	t.Run("closed item is active even when past target", func(t *testing.T) {
		item := &model.RAIDItem{Status: types.RAIDStatusClosed, TargetDate: &past}
		gt.Value(t, item.State(now)).Equal(types.ItemStateActive)
	})
}
