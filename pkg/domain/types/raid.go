package types

import "fmt"

// RAIDCategory represents the category of a RAID log item
type RAIDCategory string

const (
	RAIDCategoryRisk       RAIDCategory = "Risk"
	RAIDCategoryAssumption RAIDCategory = "Assumption"
	RAIDCategoryIssue      RAIDCategory = "Issue"
	RAIDCategoryDependency RAIDCategory = "Dependency"
)

// AllRAIDCategories returns all RAID categories in canonical report order
func AllRAIDCategories() []RAIDCategory {
	return []RAIDCategory{
		RAIDCategoryRisk,
		RAIDCategoryAssumption,
		RAIDCategoryIssue,
		RAIDCategoryDependency,
	}
}

// IsValid checks if the RAID category is valid
func (c RAIDCategory) IsValid() bool {
	switch c {
	case RAIDCategoryRisk,
		RAIDCategoryAssumption,
		RAIDCategoryIssue,
		RAIDCategoryDependency:
		return true
	default:
		return false
	}
}

// String returns the string representation of the RAID category
func (c RAIDCategory) String() string {
	return string(c)
}

// ParseRAIDCategory parses a string into a RAIDCategory
func ParseRAIDCategory(s string) (RAIDCategory, error) {
	category := RAIDCategory(s)
	if !category.IsValid() {
		return "", fmt.Errorf("invalid RAID category: %s", s)
	}
	return category, nil
}

// RAIDStatus represents the lifecycle status of a RAID item
type RAIDStatus string

const (
	RAIDStatusOpen      RAIDStatus = "Open"
	RAIDStatusMitigated RAIDStatus = "Mitigated"
	RAIDStatusClosed    RAIDStatus = "Closed"
)

// IsOpen reports whether the item still needs attention
func (s RAIDStatus) IsOpen() bool {
	return s == RAIDStatusOpen
}

// String returns the string representation of the RAID status
func (s RAIDStatus) String() string {
	return string(s)
}

// ItemState classifies an open RAID item for reporting.
// Precedence is Overdue > Open > Active: an open item with a past target
// date is always Overdue regardless of other attributes.
type ItemState string

const (
	ItemStateOverdue ItemState = "Overdue"
	ItemStateOpen    ItemState = "Open"
	ItemStateActive  ItemState = "Active"
)

// String returns the string representation of the item state
func (s ItemState) String() string {
	return string(s)
}
