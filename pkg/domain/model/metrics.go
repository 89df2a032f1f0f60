package model

import (
	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
)

// VelocityRecord is one sprint's delivered story points
// (Done stories only).
type VelocityRecord struct {
	SprintID types.SprintID `json:"sprint_id"`
	Points   int            `json:"points"`
}

// CompletionRecord compares committed story points against completed
// story points for one sprint. Both sides fill zero when the sprint is
// absent from one of the sources.
type CompletionRecord struct {
	SprintID  types.SprintID `json:"sprint_id"`
	Committed int            `json:"committed"`
	Completed int            `json:"completed"`
}

// Rate returns the completion ratio, or 0 when nothing was committed
func (c CompletionRecord) Rate() float64 {
	if c.Committed == 0 {
		return 0
	}
	return float64(c.Completed) / float64(c.Committed)
}

// CapacityRecord is one assignee's load over the capacity window
type CapacityRecord struct {
	Assignee string `json:"assignee"`
	Load     int    `json:"load"`
	Assumed  int    `json:"assumed_capacity"`
}

// DensityRecord relates defects raised in a sprint to stories planned
// for it. Ratio is nil when the sprint has no stories: the quotient is
// undefined, not zero.
type DensityRecord struct {
	SprintID types.SprintID `json:"sprint_id"`
	Defects  int            `json:"defects"`
	Stories  int            `json:"stories"`
	Ratio    *float64       `json:"ratio"`
}

// StageRecord counts open defects in one lifecycle phase
type StageRecord struct {
	Phase string `json:"phase"`
	Count int    `json:"count"`
}

// RAIDSummaryRecord aggregates one RAID category
type RAIDSummaryRecord struct {
	Category types.RAIDCategory `json:"category"`
	Total    int                `json:"total"`
	Open     int                `json:"open"`
	Overdue  int                `json:"overdue"`
	Health   types.Health       `json:"health"`
}
