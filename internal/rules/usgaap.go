package rules

import "github.com/zencompta/zencompta-engine/internal/model"

func usGAAPRules() []Rule {
	return []Rule{
		{
			ID:          "US_GAAP_001",
			Standard:    model.StandardUSGAAP,
			Category:    CategoryMeasurement,
			Title:       "Double-entry balance",
			Description: "Debits must equal credits exactly within each balancing group",
			Severity:    model.SeverityCritical,
			Check:       checkBalancingGroups,
			Remediation: []string{
				"Correct the unbalanced entries",
				"Verify amounts against source documents",
			},
			References: []string{"FASB ASC 105 - GAAP Hierarchy"},
		},
		{
			ID:          "US_GAAP_002",
			Standard:    model.StandardUSGAAP,
			Category:    CategoryDisclosure,
			Title:       "Material entry documentation",
			Description: "Entries above the materiality threshold must carry a description",
			Severity:    model.SeverityWarning,
			// 10,000 major units expressed in minor units.
			Check: checkMaterialDescriptions(1_000_000),
			Remediation: []string{
				"Describe the nature of the transaction",
				"Attach supporting documentation",
			},
			References: []string{"SEC SAB 99 - Materiality"},
		},
		{
			ID:          "US_GAAP_003",
			Standard:    model.StandardUSGAAP,
			Category:    CategoryRecognition,
			Title:       "Revenue reversals",
			Description: "Debits to revenue accounts indicate adjustments needing justification",
			Severity:    model.SeverityWarning,
			Check: checkDebitOnAccounts(
				[]string{"4", "70", "71", "72", "73", "74", "75"},
				"possible revenue reversal"),
			Remediation: []string{
				"Verify the justification for the adjustment",
				"Apply the ASC 606 five-step model",
			},
			References: []string{"FASB ASC 606 - Revenue from Contracts with Customers"},
		},
	}
}
