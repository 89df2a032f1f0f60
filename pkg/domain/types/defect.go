package types

// DefectStatus represents the lifecycle status of a defect
type DefectStatus string

const (
	DefectStatusOpen     DefectStatus = "Open"
	DefectStatusClosed   DefectStatus = "Closed"
	DefectStatusDeferred DefectStatus = "Deferred"
)

// IsOpen reports whether the defect still needs attention
func (s DefectStatus) IsOpen() bool {
	return s == DefectStatusOpen
}

// String returns the string representation of the defect status
func (s DefectStatus) String() string {
	return string(s)
}

// DefectSeverity represents the severity of a defect
type DefectSeverity string

const (
	DefectSeverityCritical DefectSeverity = "Critical"
	DefectSeverityHigh     DefectSeverity = "High"
	DefectSeverityMedium   DefectSeverity = "Medium"
	DefectSeverityLow      DefectSeverity = "Low"
)

// String returns the string representation of the defect severity
func (s DefectSeverity) String() string {
	return string(s)
}
