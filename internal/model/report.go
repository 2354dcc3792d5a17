package model

import (
	"fmt"
	"time"
)

// ComplianceReport aggregates the results of one validation run. It is created
// per invocation and handed to whichever collaborator persists or renders it.
type ComplianceReport struct {
	GeneratedAt          time.Time        `json:"generated_at"`
	ID                   string           `json:"id"`
	Standard             Standard         `json:"standard"`
	Findings             []Finding        `json:"violations"`
	SeverityDistribution map[Severity]int `json:"severity_distribution"`
	Recommendations      []string         `json:"recommendations"`
	ValidatorErrors      []string         `json:"validator_errors,omitempty"`
	ComplianceScore      float64          `json:"compliance_score"`
	RulesEvaluated       int              `json:"rules_evaluated"`
	ChecksEvaluated      int              `json:"checks_evaluated"`
	ProcessingTime       time.Duration    `json:"processing_time"`
}

// Validate ensures the report is internally consistent.
func (r *ComplianceReport) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("report ID is required")
	}
	if !r.Standard.IsValid() {
		return fmt.Errorf("invalid standard %q", r.Standard)
	}
	if r.ComplianceScore < 0.0 || r.ComplianceScore > 1.0 {
		return fmt.Errorf("compliance score must be between 0 and 1, got %f", r.ComplianceScore)
	}
	for i := range r.Findings {
		if err := r.Findings[i].Validate(); err != nil {
			return fmt.Errorf("invalid finding at index %d: %w", i, err)
		}
	}
	return nil
}

// FindingsBySeverity returns the findings carrying the given severity.
func (r *ComplianceReport) FindingsBySeverity(severity Severity) []Finding {
	var filtered []Finding
	for _, f := range r.Findings {
		if f.Severity == severity {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
