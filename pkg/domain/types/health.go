package types

import "fmt"

// Health represents the health assessment of a metric or RAID category
type Health string

const (
	HealthHealthy  Health = "healthy"
	HealthWarning  Health = "warning"
	HealthCritical Health = "critical"
)

// AllHealths returns all health levels ordered from best to worst
func AllHealths() []Health {
	return []Health{
		HealthHealthy,
		HealthWarning,
		HealthCritical,
	}
}

// IsValid checks if the health level is valid
func (h Health) IsValid() bool {
	switch h {
	case HealthHealthy,
		HealthWarning,
		HealthCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the health level
func (h Health) String() string {
	return string(h)
}

// Emoji returns a display emoji for the health level
func (h Health) Emoji() string {
	switch h {
	case HealthHealthy:
		return "🟢"
	case HealthWarning:
		return "🟡"
	case HealthCritical:
		return "🔴"
	default:
		return "⚪"
	}
}

// ParseHealth parses a string into a Health level
func ParseHealth(s string) (Health, error) {
	h := Health(s)
	if !h.IsValid() {
		return "", fmt.Errorf("invalid health level: %s", s)
	}
	return h, nil
}
