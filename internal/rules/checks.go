package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zencompta/zencompta-engine/internal/model"
)

// Shared check builders used by every standard's rule set.

// checkBalancingGroups verifies double-entry balance with exact minor-unit
// equality: entries sharing a reference (piece number) form one group, entries
// without a reference form a single residual group, and every group must net
// to exactly zero. Balance documents carry net per-account balances rather
// than postings, so only journals and ledgers are checked.
func checkBalancingGroups(doc *model.Document) []model.Finding {
	if doc.Type == model.DocumentTypeBalance {
		return nil
	}

	groups := make(map[string][]int)
	for i := range doc.Entries {
		groups[doc.Entries[i].Reference] = append(groups[doc.Entries[i].Reference], i)
	}

	refs := make([]string, 0, len(groups))
	for ref := range groups {
		refs = append(refs, ref)
	}
	sort.Strings(refs)

	var findings []model.Finding
	for _, ref := range refs {
		var total int64
		ids := make([]string, 0, len(groups[ref]))
		for _, i := range groups[ref] {
			total += doc.Entries[i].AmountMinor
			ids = append(ids, doc.Entries[i].ID)
		}
		if total == 0 {
			continue
		}
		label := ref
		if label == "" {
			label = "(no reference)"
		}
		findings = append(findings, model.Finding{
			Message:          fmt.Sprintf("balancing group %s does not net to zero: difference of %d minor units", label, total),
			AffectedEntryIDs: ids,
		})
	}
	return findings
}

// checkRequiredClasses reports account classes that never appear in the document.
func checkRequiredClasses(required []string) CheckFunc {
	return func(doc *model.Document) []model.Finding {
		seen := make(map[string]bool)
		for i := range doc.Entries {
			code := doc.Entries[i].AccountCode
			if code != "" {
				seen[code[:1]] = true
			}
		}
		var missing []string
		for _, class := range required {
			if !seen[class] {
				missing = append(missing, class)
			}
		}
		if len(missing) == 0 {
			return nil
		}
		return []model.Finding{{
			Message: fmt.Sprintf("account classes missing from the chart: %s", strings.Join(missing, ", ")),
		}}
	}
}

// checkAccountFormat flags accounts outside the allowed classes or shorter
// than the standard's minimum code length.
func checkAccountFormat(allowedClasses []string, minLength int) CheckFunc {
	allowed := make(map[string]bool, len(allowedClasses))
	for _, c := range allowedClasses {
		allowed[c] = true
	}
	return func(doc *model.Document) []model.Finding {
		var findings []model.Finding
		for i := range doc.Entries {
			code := doc.Entries[i].AccountCode
			if len(code) < minLength {
				findings = append(findings, model.Finding{
					Message:          fmt.Sprintf("account code %q is shorter than the %d-digit minimum", code, minLength),
					AffectedEntryIDs: []string{doc.Entries[i].ID},
				})
				continue
			}
			if !allowed[code[:1]] {
				findings = append(findings, model.Finding{
					Message:          fmt.Sprintf("account %q uses class %q outside the standard's chart", code, code[:1]),
					AffectedEntryIDs: []string{doc.Entries[i].ID},
				})
			}
		}
		return findings
	}
}

// checkDescriptionKeywords flags entries on matching accounts whose description
// mentions none of the required keywords.
func checkDescriptionKeywords(prefixes, keywords []string, message string) CheckFunc {
	return func(doc *model.Document) []model.Finding {
		var findings []model.Finding
		for i := range doc.Entries {
			entry := &doc.Entries[i]
			if !hasPrefix(entry.AccountCode, prefixes) {
				continue
			}
			desc := strings.ToLower(entry.Description)
			documented := false
			for _, kw := range keywords {
				if strings.Contains(desc, kw) {
					documented = true
					break
				}
			}
			if !documented {
				findings = append(findings, model.Finding{
					Message:          fmt.Sprintf("%s (account %s)", message, entry.AccountCode),
					AffectedEntryIDs: []string{entry.ID},
				})
			}
		}
		return findings
	}
}

// checkDebitOnAccounts flags debit (positive) entries on accounts that should
// normally carry credits, such as revenue or accumulated depreciation.
func checkDebitOnAccounts(prefixes []string, message string) CheckFunc {
	return func(doc *model.Document) []model.Finding {
		var findings []model.Finding
		for i := range doc.Entries {
			entry := &doc.Entries[i]
			if !hasPrefix(entry.AccountCode, prefixes) {
				continue
			}
			if entry.AmountMinor > 0 {
				findings = append(findings, model.Finding{
					Message:          fmt.Sprintf("%s: debit of %d minor units on account %s", message, entry.AmountMinor, entry.AccountCode),
					AffectedEntryIDs: []string{entry.ID},
				})
			}
		}
		return findings
	}
}

// checkNegativeBalance flags accounts in the given ranges whose net balance is
// negative, e.g. inventory that can never hold a credit balance.
func checkNegativeBalance(prefixes []string, message string) CheckFunc {
	return func(doc *model.Document) []model.Finding {
		totals := make(map[string]int64)
		entryIDs := make(map[string][]string)
		for i := range doc.Entries {
			entry := &doc.Entries[i]
			if !hasPrefix(entry.AccountCode, prefixes) {
				continue
			}
			totals[entry.AccountCode] += entry.AmountMinor
			entryIDs[entry.AccountCode] = append(entryIDs[entry.AccountCode], entry.ID)
		}

		accounts := make([]string, 0, len(totals))
		for account := range totals {
			accounts = append(accounts, account)
		}
		sort.Strings(accounts)

		var findings []model.Finding
		for _, account := range accounts {
			if totals[account] < 0 {
				findings = append(findings, model.Finding{
					Message:          fmt.Sprintf("%s: account %s nets to %d minor units", message, account, totals[account]),
					AffectedEntryIDs: entryIDs[account],
				})
			}
		}
		return findings
	}
}

// checkMaterialDescriptions flags entries at or above the materiality
// threshold (minor units, absolute value) with an empty description.
func checkMaterialDescriptions(thresholdMinor int64) CheckFunc {
	return func(doc *model.Document) []model.Finding {
		var findings []model.Finding
		for i := range doc.Entries {
			entry := &doc.Entries[i]
			amount := entry.AmountMinor
			if amount < 0 {
				amount = -amount
			}
			if amount >= thresholdMinor && strings.TrimSpace(entry.Description) == "" {
				findings = append(findings, model.Finding{
					Message:          fmt.Sprintf("material entry of %d minor units on account %s has no description", entry.AmountMinor, entry.AccountCode),
					AffectedEntryIDs: []string{entry.ID},
				})
			}
		}
		return findings
	}
}

func hasPrefix(code string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}
