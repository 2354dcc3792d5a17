package rules

import "github.com/zencompta/zencompta-engine/internal/model"

func syscebnlRules() []Rule {
	return []Rule{
		{
			ID:          "SYSCEBNL_001",
			Standard:    model.StandardSYSCEBNL,
			Category:    CategoryStructure,
			Title:       "SYSCEBNL chart of accounts",
			Description: "Account codes must follow the SYSCEBNL chart (classes 1-8, two digits minimum)",
			Severity:    model.SeverityError,
			Check:       checkAccountFormat([]string{"1", "2", "3", "4", "5", "6", "7", "8"}, 2),
			Remediation: []string{
				"Use SYSCEBNL classes 1 to 8",
				"Use at least two digits per account code",
			},
			References: []string{"Acte uniforme OHADA - SYSCEBNL"},
		},
		{
			ID:          "SYSCEBNL_002",
			Standard:    model.StandardSYSCEBNL,
			Category:    CategoryPresentation,
			Title:       "Fund accounts",
			Description: "A non-profit's accounts must include class 1 own funds",
			Severity:    model.SeverityWarning,
			Check:       checkRequiredClasses([]string{"1"}),
			Remediation: []string{
				"Record the entity's own funds and dedicated funds",
				"Review the fund accounting setup",
			},
			References: []string{"SYSCEBNL - Fonds propres et fonds dédiés"},
		},
		{
			ID:          "SYSCEBNL_003",
			Standard:    model.StandardSYSCEBNL,
			Category:    CategoryDisclosure,
			Title:       "Contribution documentation",
			Description: "Contribution and grant income must identify its origin",
			Severity:    model.SeverityWarning,
			Check: checkDescriptionKeywords(
				[]string{"74", "75"},
				[]string{"don", "subvention", "cotisation", "legs", "grant", "donation"},
				"contribution entry does not identify its origin"),
			Remediation: []string{
				"Identify the donor or granting body",
				"Document any restrictions attached to the contribution",
			},
			References: []string{"SYSCEBNL - Ressources"},
		},
		{
			ID:          "SYSCEBNL_004",
			Standard:    model.StandardSYSCEBNL,
			Category:    CategoryMeasurement,
			Title:       "Double-entry balance",
			Description: "Debits must equal credits exactly within each balancing group",
			Severity:    model.SeverityCritical,
			Check:       checkBalancingGroups,
			Remediation: []string{
				"Correct the unbalanced entries",
				"Respect the double-entry principle",
			},
			References: []string{"Acte uniforme OHADA - SYSCEBNL"},
		},
	}
}
