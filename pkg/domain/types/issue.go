package types

import "fmt"

// IssueType represents the work item type of a tracker issue
type IssueType string

const (
	IssueTypeStory IssueType = "Story"
	IssueTypeTask  IssueType = "Task"
	IssueTypeBug   IssueType = "Bug"
	IssueTypeSpike IssueType = "Spike"
)

// IssueStatus represents the workflow status of a tracker issue
type IssueStatus string

const (
	IssueStatusToDo       IssueStatus = "To Do"
	IssueStatusInProgress IssueStatus = "In Progress"
	IssueStatusBlocked    IssueStatus = "Blocked"
	IssueStatusDone       IssueStatus = "Done"
)

// AllIssueStatuses returns all valid issue statuses
func AllIssueStatuses() []IssueStatus {
	return []IssueStatus{
		IssueStatusToDo,
		IssueStatusInProgress,
		IssueStatusBlocked,
		IssueStatusDone,
	}
}

// IsValid checks if the issue status is valid
func (s IssueStatus) IsValid() bool {
	switch s {
	case IssueStatusToDo,
		IssueStatusInProgress,
		IssueStatusBlocked,
		IssueStatusDone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the issue status
func (s IssueStatus) String() string {
	return string(s)
}

// String returns the string representation of the issue type
func (t IssueType) String() string {
	return string(t)
}

// ParseIssueStatus parses a string into an IssueStatus
func ParseIssueStatus(s string) (IssueStatus, error) {
	status := IssueStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid issue status: %s", s)
	}
	return status, nil
}
