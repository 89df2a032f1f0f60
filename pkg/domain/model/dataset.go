package model

import (
	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
)

// Dataset holds the cleaned program data for one analysis run.
// Sprints is the canonical sprint axis: deduplicated identifiers from the
// issue log that carry a parsable ordinal, sorted ascending by ordinal.
type Dataset struct {
	Issues   []*Issue
	Defects  []*Defect
	RAID     []*RAIDItem
	Sprints  []types.SprintID
	LoadedAt string
}

// IsEmpty reports whether the dataset holds no rows at all
func (d *Dataset) IsEmpty() bool {
	return len(d.Issues) == 0 && len(d.Defects) == 0 && len(d.RAID) == 0
}
