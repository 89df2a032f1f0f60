package model

import (
	"time"

	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
)

// RAIDItem represents a single entry from the RAID log
// (Risks, Assumptions, Issues, Dependencies)
type RAIDItem struct {
	ID          string
	Category    types.RAIDCategory
	Description string
	Owner       string
	Status      types.RAIDStatus
	Impact      string
	Probability string
	Mitigation  string
	TargetDate  *time.Time
}

// State classifies the item relative to the given point in time.
// Overdue takes precedence over Open. Items with no target date are
// never overdue.
func (r *RAIDItem) State(now time.Time) types.ItemState {
	if r.Status.IsOpen() && r.TargetDate != nil && r.TargetDate.Before(now) {
		return types.ItemStateOverdue
	}
	if r.Status.IsOpen() {
		return types.ItemStateOpen
	}
	return types.ItemStateActive
}
