package model

// Severity represents the severity level of a compliance finding.
type Severity string

const (
	// SeverityInfo indicates an informational observation with no direct impact.
	SeverityInfo Severity = "info"
	// SeverityWarning indicates an issue that should be reviewed.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a compliance failure that must be corrected.
	SeverityError Severity = "error"
	// SeverityCritical indicates a failure requiring immediate attention.
	SeverityCritical Severity = "critical"
)

// Rank returns the sort priority of a severity (lower is more severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 1
	case SeverityError:
		return 2
	case SeverityWarning:
		return 3
	case SeverityInfo:
		return 4
	default:
		return 5
	}
}

// Weight returns the contribution of one finding of this severity to the
// weighted violation density used for the compliance score.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityCritical:
		return 1.0
	case SeverityError:
		return 0.6
	case SeverityWarning:
		return 0.3
	case SeverityInfo:
		return 0.05
	default:
		return 0.0
	}
}

// IsValid reports whether the severity is one of the defined levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		return true
	default:
		return false
	}
}
