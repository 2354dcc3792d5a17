package validate

import (
	"context"
	"fmt"
	"sort"

	"github.com/zencompta/zencompta-engine/internal/model"
)

// CrossDocumentConfig holds configuration for cross-document validation.
type CrossDocumentConfig struct {
	// ToleranceMinor is the allowed discrepancy between two documents'
	// totals for the same account, in minor units.
	ToleranceMinor int64
}

// DefaultCrossDocumentConfig returns the default configuration.
func DefaultCrossDocumentConfig() CrossDocumentConfig {
	return CrossDocumentConfig{ToleranceMinor: 0}
}

// CrossDocumentValidator compares account totals across the documents of one
// project and fiscal year, e.g. a trial balance against journal postings.
type CrossDocumentValidator struct {
	config CrossDocumentConfig
}

// NewCrossDocumentValidator creates a cross-document validator.
func NewCrossDocumentValidator(config CrossDocumentConfig) *CrossDocumentValidator {
	return &CrossDocumentValidator{config: config}
}

// Name implements Validator.
func (v *CrossDocumentValidator) Name() string {
	return "cross_document"
}

// Run implements Validator. Cross-validation is only meaningful with at least
// two sources: fewer documents yield an empty result, not an error. When more
// than two documents reference an account, the maximum pairwise discrepancy is
// reported rather than the average, favoring sensitivity over noise
// suppression.
func (v *CrossDocumentValidator) Run(ctx context.Context, in Input) (Result, error) {
	if len(in.Documents) < 2 {
		return Result{}, nil
	}

	totalsByDoc := make([]map[string]int64, len(in.Documents))
	accounts := make(map[string]int)
	for i, doc := range in.Documents {
		totalsByDoc[i] = doc.AccountTotals()
		for account := range totalsByDoc[i] {
			accounts[account]++
		}
	}

	shared := make([]string, 0, len(accounts))
	for account, docCount := range accounts {
		if docCount >= 2 {
			shared = append(shared, account)
		}
	}
	sort.Strings(shared)

	var result Result
	for _, account := range shared {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}
		result.ChecksEvaluated++

		var maxDiscrepancy int64
		var worstA, worstB int
		var worstTotalA, worstTotalB int64
		for i := 0; i < len(in.Documents); i++ {
			totalA, okA := totalsByDoc[i][account]
			if !okA {
				continue
			}
			for j := i + 1; j < len(in.Documents); j++ {
				totalB, okB := totalsByDoc[j][account]
				if !okB {
					continue
				}
				discrepancy := totalA - totalB
				if discrepancy < 0 {
					discrepancy = -discrepancy
				}
				if discrepancy > maxDiscrepancy {
					maxDiscrepancy = discrepancy
					worstA, worstB = i, j
					worstTotalA, worstTotalB = totalA, totalB
				}
			}
		}

		if maxDiscrepancy <= v.config.ToleranceMinor {
			continue
		}

		docA := in.Documents[worstA]
		docB := in.Documents[worstB]
		result.Findings = append(result.Findings, model.Finding{
			Source:   "cross_document",
			Category: "cross_document",
			Severity: model.SeverityError,
			Score:    discrepancyScore(maxDiscrepancy, worstTotalA, worstTotalB),
			Message: fmt.Sprintf("account %s differs by %d minor units between %s (%d) and %s (%d)",
				account, maxDiscrepancy, docA.Name, worstTotalA, docB.Name, worstTotalB),
			AffectedEntryIDs: entryIDsForAccount(docA, docB, account),
		})
	}

	return result, nil
}

// discrepancyScore normalizes a discrepancy by the larger total involved.
func discrepancyScore(discrepancy, totalA, totalB int64) float64 {
	if totalA < 0 {
		totalA = -totalA
	}
	if totalB < 0 {
		totalB = -totalB
	}
	largest := totalA
	if totalB > largest {
		largest = totalB
	}
	if largest == 0 {
		return 1.0
	}
	score := float64(discrepancy) / float64(largest)
	if score > 1.0 {
		return 1.0
	}
	return score
}

func entryIDsForAccount(docA, docB *model.Document, account string) []string {
	var ids []string
	for _, doc := range []*model.Document{docA, docB} {
		for i := range doc.Entries {
			if doc.Entries[i].AccountCode == account {
				ids = append(ids, doc.Entries[i].ID)
			}
		}
	}
	return ids
}
