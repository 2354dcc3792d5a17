package rules

import "github.com/zencompta/zencompta-engine/internal/model"

func pcgRules() []Rule {
	return []Rule{
		{
			ID:          "PCG_001",
			Standard:    model.StandardPCG,
			Category:    CategoryStructure,
			Title:       "Plan Comptable Général chart",
			Description: "Account codes must follow the French PCG (classes 1-7, three digits minimum)",
			Severity:    model.SeverityError,
			Check:       checkAccountFormat([]string{"1", "2", "3", "4", "5", "6", "7"}, 3),
			Remediation: []string{
				"Use PCG classes 1 to 7",
				"Use at least three digits per account code",
			},
			References: []string{"Code de commerce - Plan comptable général"},
		},
		{
			ID:          "PCG_002",
			Standard:    model.StandardPCG,
			Category:    CategoryValuation,
			Title:       "Inventory balances",
			Description: "Inventory accounts cannot carry a negative balance",
			Severity:    model.SeverityError,
			Check: checkNegativeBalance(
				[]string{"31", "32", "33", "34", "35", "37"},
				"negative inventory balance"),
			Remediation: []string{
				"Verify the physical inventory",
				"Correct the stock movements",
			},
			References: []string{"PCG - Évaluation des stocks"},
		},
		{
			ID:          "PCG_003",
			Standard:    model.StandardPCG,
			Category:    CategoryValuation,
			Title:       "Inventory valuation method",
			Description: "Inventory entries must state the valuation method used",
			Severity:    model.SeverityWarning,
			Check: checkDescriptionKeywords(
				[]string{"31", "32", "33", "34", "35", "37"},
				[]string{"fifo", "cump", "cout moyen", "coût moyen", "weighted average"},
				"inventory entry does not state its valuation method"),
			Remediation: []string{
				"State the valuation method (FIFO or weighted average cost)",
				"Document the inventory valuation policy",
			},
			References: []string{"PCG - Évaluation des stocks"},
		},
		{
			ID:          "PCG_004",
			Standard:    model.StandardPCG,
			Category:    CategoryMeasurement,
			Title:       "Double-entry balance",
			Description: "Debits must equal credits exactly within each balancing group",
			Severity:    model.SeverityCritical,
			Check:       checkBalancingGroups,
			Remediation: []string{
				"Correct the unbalanced entries",
				"Respect the double-entry principle",
			},
			References: []string{"Code de commerce - Tenue des comptes"},
		},
	}
}
