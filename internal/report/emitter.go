package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zencompta/zencompta-engine/internal/model"
)

// Emitter derives alerts and recommendations from a finished report.
type Emitter struct {
	// EmitWarnings also converts warning findings into alerts, with a
	// 30-day due date. Off by default to keep dashboards focused on
	// critical and error findings.
	EmitWarnings bool
}

// NewEmitter creates an emitter with default settings.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Alerts converts the report's actionable findings into alerts. Critical
// findings are due immediately, errors within seven days, warnings (when
// enabled) within thirty.
func (e *Emitter) Alerts(report *model.ComplianceReport, now time.Time) []model.Alert {
	var alerts []model.Alert
	for _, finding := range report.Findings {
		var due time.Time
		switch finding.Severity {
		case model.SeverityCritical:
			due = now
		case model.SeverityError:
			due = now.AddDate(0, 0, 7)
		case model.SeverityWarning:
			if !e.EmitWarnings {
				continue
			}
			due = now.AddDate(0, 0, 30)
		default:
			continue
		}

		alerts = append(alerts, model.Alert{
			CreatedAt: now,
			DueDate:   due,
			ID:        uuid.New().String(),
			ReportID:  report.ID,
			RuleID:    finding.RuleID,
			Title:     alertTitle(finding),
			Message:   finding.Message,
			Severity:  finding.Severity,
		})
	}
	return alerts
}

func alertTitle(finding model.Finding) string {
	if finding.RuleID != "" {
		return fmt.Sprintf("%s: %s violation", finding.RuleID, finding.Severity)
	}
	return fmt.Sprintf("%s: %s finding", finding.Source, finding.Severity)
}

// categoryRecommendations maps finding categories to remediation advice.
// Rule-specific remediation steps take precedence; these cover the categories
// the statistical validators emit and give every finding at least one
// actionable next step.
var categoryRecommendations = map[string][]string{
	"structure": {
		"Review the chart of accounts against the selected standard",
	},
	"valuation": {
		"Document the valuation methods applied to the flagged accounts",
	},
	"presentation": {
		"Review the presentation of the flagged accounts in the financial statements",
	},
	"recognition": {
		"Verify the recognition criteria for the flagged entries",
	},
	"measurement": {
		"Recompute the flagged amounts and correct the imbalances",
	},
	"disclosure": {
		"Complete the supporting documentation for the flagged entries",
	},
	"duplicate": {
		"Review duplicate entries and reverse unintended double postings",
	},
	"statistical": {
		"Investigate accounts with unusual amount distributions for manual adjustments",
	},
	"temporal": {
		"Explain the flagged activity spikes or correct misdated entries",
	},
	"cross_document": {
		"Reconcile account totals between the flagged documents",
	},
	"validator_failure": {
		"Re-run the validation once the failed checker's cause is resolved",
	},
}

// standardRecommendations closes each report with standard-specific advice,
// mirroring the closing notes auditors expect per referential.
var standardRecommendations = map[model.Standard][]string{
	model.StandardIFRS: {
		"Prepare the IFRS disclosure notes alongside the primary statements",
	},
	model.StandardSYSCOHADA: {
		"File the normalized SYSCOHADA financial statements (DSF) on schedule",
	},
	model.StandardUSGAAP: {
		"Review ASC codification updates applicable to the fiscal year",
	},
	model.StandardPCG: {
		"Verify the FEC export matches the validated journal entries",
	},
	model.StandardSYSCEBNL: {
		"Report the use of restricted funds to the granting bodies",
	},
}

// Recommendations builds the report's deduplicated advice list: finding-level
// remediation first, then category advice, then standard-level closing notes.
// Order follows finding order, so the most severe issues surface first.
func (e *Emitter) Recommendations(report *model.ComplianceReport) []string {
	seen := make(map[string]bool)
	var recs []string
	add := func(texts []string) {
		for _, text := range texts {
			if text == "" || seen[text] {
				continue
			}
			seen[text] = true
			recs = append(recs, text)
		}
	}

	for _, finding := range report.Findings {
		add(finding.Remediation)
		add(categoryRecommendations[finding.Category])
	}
	if len(report.Findings) > 0 {
		add(standardRecommendations[report.Standard])
	}
	return recs
}
