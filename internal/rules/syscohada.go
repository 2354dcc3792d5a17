package rules

import "github.com/zencompta/zencompta-engine/internal/model"

func syscohadaRules() []Rule {
	return []Rule{
		{
			ID:          "SYSCOHADA_001",
			Standard:    model.StandardSYSCOHADA,
			Category:    CategoryStructure,
			Title:       "SYSCOHADA chart of accounts",
			Description: "Account codes must follow the revised SYSCOHADA chart (classes 1-8, two digits minimum)",
			Severity:    model.SeverityError,
			Check:       checkAccountFormat([]string{"1", "2", "3", "4", "5", "6", "7", "8"}, 2),
			Remediation: []string{
				"Use SYSCOHADA classes 1 to 8",
				"Use at least two digits per account code",
			},
			References: []string{"Acte uniforme OHADA - Plan comptable général"},
		},
		{
			ID:          "SYSCOHADA_002",
			Standard:    model.StandardSYSCOHADA,
			Category:    CategoryValuation,
			Title:       "Depreciation documentation",
			Description: "Depreciation entries must state their nature and the asset concerned",
			Severity:    model.SeverityWarning,
			Check: checkDescriptionKeywords(
				[]string{"28", "29", "39", "48", "49", "59", "68"},
				[]string{"amortissement", "dotation", "depreciation", "provision"},
				"depreciation entry is not documented"),
			Remediation: []string{
				"State the nature of the depreciation",
				"Identify the asset concerned",
			},
			References: []string{"Acte uniforme OHADA - Amortissements"},
		},
		{
			ID:          "SYSCOHADA_003",
			Standard:    model.StandardSYSCOHADA,
			Category:    CategoryValuation,
			Title:       "Accumulated depreciation sign",
			Description: "Accumulated depreciation accounts normally carry credit balances",
			Severity:    model.SeverityWarning,
			Check: checkDebitOnAccounts(
				[]string{"28", "29", "39"},
				"unexpected debit on an accumulated depreciation account"),
			Remediation: []string{
				"Verify the depreciation computation",
				"Check for reversed postings",
			},
			References: []string{"Acte uniforme OHADA - Amortissements"},
		},
		{
			ID:          "SYSCOHADA_004",
			Standard:    model.StandardSYSCOHADA,
			Category:    CategoryMeasurement,
			Title:       "Double-entry balance",
			Description: "Debits must equal credits exactly within each balancing group",
			Severity:    model.SeverityCritical,
			Check:       checkBalancingGroups,
			Remediation: []string{
				"Correct the unbalanced entries",
				"Respect the double-entry principle",
			},
			References: []string{"Acte uniforme OHADA - Plan comptable général"},
		},
	}
}
