package model

import "time"

// Alert is an actionable item derived from a report finding, consumed by the
// external alerting dashboard.
type Alert struct {
	CreatedAt time.Time `json:"created_at"`
	DueDate   time.Time `json:"due_date"`
	ID        string    `json:"id"`
	ReportID  string    `json:"report_id"`
	RuleID    string    `json:"rule_id,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
}

// Overdue reports whether the alert's due date has passed at the given time.
func (a *Alert) Overdue(now time.Time) bool {
	return now.After(a.DueDate)
}
