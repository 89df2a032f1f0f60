package model

import (
	"time"

	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
)

// Defect represents a single entry from the defect log
type Defect struct {
	ID         string
	Severity   types.DefectSeverity
	Priority   string
	Status     types.DefectStatus
	RaisedIn   types.SprintID
	Phase      string
	Owner      string
	DateRaised *time.Time
	DateClosed *time.Time
}
