package model

import (
	"time"

	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
)

// Issue represents a single work item from the issue tracker export
type Issue struct {
	ID          string
	Type        types.IssueType
	SprintID    types.SprintID
	Status      types.IssueStatus
	Assignee    string
	StoryPoints int
	CreatedDate *time.Time
	ClosedDate  *time.Time
	Priority    string
}

// IsStory reports whether the issue is a user story
func (i *Issue) IsStory() bool {
	return i.Type == types.IssueTypeStory
}

// IsDone reports whether the issue has been completed
func (i *Issue) IsDone() bool {
	return i.Status == types.IssueStatusDone
}
