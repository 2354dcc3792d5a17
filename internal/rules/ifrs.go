package rules

import "github.com/zencompta/zencompta-engine/internal/model"

func ifrsRules() []Rule {
	return []Rule{
		{
			ID:          "IFRS_001",
			Standard:    model.StandardIFRS,
			Category:    CategoryStructure,
			Title:       "IFRS chart of accounts",
			Description: "The chart of accounts must cover the core IFRS classes",
			Severity:    model.SeverityError,
			Check:       checkRequiredClasses([]string{"1", "2", "3", "4", "5"}),
			Remediation: []string{
				"Add accounts for the missing classes",
				"Review the chart of accounts for completeness",
			},
			References: []string{"IAS 1 - Presentation of Financial Statements"},
		},
		{
			ID:          "IFRS_002",
			Standard:    model.StandardIFRS,
			Category:    CategoryValuation,
			Title:       "Fair value measurement",
			Description: "Financial instrument accounts must document fair value measurement",
			Severity:    model.SeverityWarning,
			Check: checkDescriptionKeywords(
				[]string{"26", "27", "50"},
				[]string{"juste valeur", "fair value"},
				"entry on a fair-value account does not document its measurement"),
			Remediation: []string{
				"Document the fair value measurement",
				"State the fair value hierarchy level",
			},
			References: []string{"IFRS 13 - Fair Value Measurement"},
		},
		{
			ID:          "IFRS_003",
			Standard:    model.StandardIFRS,
			Category:    CategoryRecognition,
			Title:       "Revenue recognition",
			Description: "Revenue entries must reference the underlying customer contract",
			Severity:    model.SeverityError,
			Check: checkDescriptionKeywords(
				[]string{"70", "71", "72", "73", "74", "75"},
				[]string{"contrat", "client", "contract", "customer"},
				"revenue entry does not reference a customer contract"),
			Remediation: []string{
				"Document the performance obligation",
				"Reference the customer contract",
				"Apply the five-step IFRS 15 model",
			},
			References: []string{"IFRS 15 - Revenue from Contracts with Customers"},
		},
		{
			ID:          "IFRS_004",
			Standard:    model.StandardIFRS,
			Category:    CategoryRecognition,
			Title:       "Revenue reversals",
			Description: "Debits to revenue accounts indicate cancellations needing justification",
			Severity:    model.SeverityWarning,
			Check: checkDebitOnAccounts(
				[]string{"70", "71", "72", "73", "74", "75"},
				"possible revenue reversal"),
			Remediation: []string{
				"Verify the justification for the cancellation",
				"Document contract modifications",
			},
			References: []string{"IFRS 15 - Revenue from Contracts with Customers"},
		},
		{
			ID:          "IFRS_005",
			Standard:    model.StandardIFRS,
			Category:    CategoryMeasurement,
			Title:       "Double-entry balance",
			Description: "Debits must equal credits exactly within each balancing group",
			Severity:    model.SeverityCritical,
			Check:       checkBalancingGroups,
			Remediation: []string{
				"Correct the unbalanced entries",
				"Verify amounts against source documents",
			},
			References: []string{"IAS 1 - Presentation of Financial Statements"},
		},
	}
}
