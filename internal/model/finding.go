package model

import "fmt"

// Finding represents a single issue a validator reported against specific entries.
// Findings are produced fresh on every run and never mutated afterwards.
type Finding struct {
	RuleID           string   `json:"rule_id,omitempty"`
	Source           string   `json:"source"`
	Category         string   `json:"category,omitempty"`
	Message          string   `json:"message"`
	Severity         Severity `json:"severity"`
	AffectedEntryIDs []string `json:"affected_entry_ids,omitempty"`
	Remediation      []string `json:"remediation,omitempty"`
	Score            float64  `json:"score"`
}

// Validate ensures the finding is well formed.
func (f *Finding) Validate() error {
	if f.Source == "" && f.RuleID == "" {
		return fmt.Errorf("finding requires a rule ID or a validator source")
	}
	if !f.Severity.IsValid() {
		return fmt.Errorf("invalid severity %q", f.Severity)
	}
	if f.Message == "" {
		return fmt.Errorf("finding message is required")
	}
	if f.Score < 0.0 || f.Score > 1.0 {
		return fmt.Errorf("score must be between 0 and 1, got %f", f.Score)
	}
	return nil
}
