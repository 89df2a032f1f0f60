package types

import (
	"regexp"
	"strconv"
)

// SprintID represents a sprint identifier as it appears in the source
// export, e.g. "SPRINT-3" or "Sprint 12".
type SprintID string

var sprintOrdinalPattern = regexp.MustCompile(`\d+`)

// Ordinal extracts the sprint sequence number from the identifier.
// The first embedded integer is used; identifiers without one report ok=false
// and are excluded from sprint-ordered aggregations.
func (s SprintID) Ordinal() (int, bool) {
	m := sprintOrdinalPattern.FindString(string(s))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String returns the string representation of the sprint ID
func (s SprintID) String() string {
	return string(s)
}
